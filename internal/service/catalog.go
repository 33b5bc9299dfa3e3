package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/repository"
)

// CatalogService owns the content listings: beaches, trails, boat
// tours, events, and guide profiles. Reads are public; writes are
// gated on the acting user's role.
type CatalogService struct {
	beaches *repository.BeachRepository
	trails  *repository.TrailRepository
	tours   *repository.TourRepository
	events  *repository.EventRepository
	guides  *repository.GuideRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	beaches *repository.BeachRepository,
	trails *repository.TrailRepository,
	tours *repository.TourRepository,
	events *repository.EventRepository,
	guides *repository.GuideRepository,
) *CatalogService {
	return &CatalogService{
		beaches: beaches,
		trails:  trails,
		tours:   tours,
		events:  events,
		guides:  guides,
	}
}

// ListBeaches returns beaches, optionally filtered by region.
func (s *CatalogService) ListBeaches(ctx context.Context, region string) ([]domain.Beach, error) {
	return s.beaches.List(ctx, region)
}

// GetBeach returns one beach.
func (s *CatalogService) GetBeach(ctx context.Context, id int64) (*domain.Beach, error) {
	return s.beaches.FindByID(ctx, id)
}

// CreateBeach adds a beach. Admin only.
func (s *CatalogService) CreateBeach(ctx context.Context, actor domain.User, b domain.Beach) (*domain.Beach, error) {
	if !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	return s.beaches.Create(ctx, b)
}

// UpdateBeach replaces a beach's fields. Admin only.
func (s *CatalogService) UpdateBeach(ctx context.Context, actor domain.User, b domain.Beach) (*domain.Beach, error) {
	if !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	return s.beaches.Update(ctx, b)
}

// DeleteBeach removes a beach. Admin only.
func (s *CatalogService) DeleteBeach(ctx context.Context, actor domain.User, id int64) error {
	if !actor.HasAdminAccess() {
		return domain.ErrForbidden
	}
	return s.beaches.Delete(ctx, id)
}

// ListTrails returns trails, optionally filtered by difficulty.
func (s *CatalogService) ListTrails(ctx context.Context, difficulty domain.TrailDifficulty) ([]domain.Trail, error) {
	return s.trails.List(ctx, difficulty)
}

// GetTrail returns one trail.
func (s *CatalogService) GetTrail(ctx context.Context, id int64) (*domain.Trail, error) {
	return s.trails.FindByID(ctx, id)
}

// CreateTrail adds a trail. Admin only.
func (s *CatalogService) CreateTrail(ctx context.Context, actor domain.User, t domain.Trail) (*domain.Trail, error) {
	if !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	return s.trails.Create(ctx, t)
}

// UpdateTrail replaces a trail's fields. Admin only.
func (s *CatalogService) UpdateTrail(ctx context.Context, actor domain.User, t domain.Trail) (*domain.Trail, error) {
	if !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	return s.trails.Update(ctx, t)
}

// DeleteTrail removes a trail. Admin only.
func (s *CatalogService) DeleteTrail(ctx context.Context, actor domain.User, id int64) error {
	if !actor.HasAdminAccess() {
		return domain.ErrForbidden
	}
	return s.trails.Delete(ctx, id)
}

// ListTours returns all boat tours.
func (s *CatalogService) ListTours(ctx context.Context) ([]domain.BoatTour, error) {
	return s.tours.List(ctx, 0)
}

// GetTour returns one boat tour.
func (s *CatalogService) GetTour(ctx context.Context, id int64) (*domain.BoatTour, error) {
	return s.tours.FindByID(ctx, id)
}

// CreateTour adds a boat tour owned by the acting operator.
func (s *CatalogService) CreateTour(ctx context.Context, actor domain.User, t domain.BoatTour) (*domain.BoatTour, error) {
	if actor.UserType != domain.UserTypeBoatTourOperator && !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	t.OperatorID = actor.ID
	if t.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}
	return s.tours.Create(ctx, t)
}

// UpdateTour replaces a tour's fields. Owning operator or admin.
func (s *CatalogService) UpdateTour(ctx context.Context, actor domain.User, t domain.BoatTour) (*domain.BoatTour, error) {
	existing, err := s.tours.FindByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if existing.OperatorID != actor.ID && !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	return s.tours.Update(ctx, t)
}

// DeleteTour removes a tour. Owning operator or admin.
func (s *CatalogService) DeleteTour(ctx context.Context, actor domain.User, id int64) error {
	existing, err := s.tours.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OperatorID != actor.ID && !actor.HasAdminAccess() {
		return domain.ErrForbidden
	}
	return s.tours.Delete(ctx, id)
}

// ListUpcomingEvents returns events that have not ended yet.
func (s *CatalogService) ListUpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	return s.events.ListUpcoming(ctx, time.Now())
}

// GetEvent returns one event.
func (s *CatalogService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

// CreateEvent adds an event owned by the acting producer.
func (s *CatalogService) CreateEvent(ctx context.Context, actor domain.User, e domain.Event) (*domain.Event, error) {
	if actor.UserType != domain.UserTypeEventProducer && !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	e.ProducerID = actor.ID
	if !e.EndsAt.After(e.StartsAt) {
		return nil, fmt.Errorf("%w: event must end after it starts", domain.ErrInvalidInput)
	}
	return s.events.Create(ctx, e)
}

// UpdateEvent replaces an event's fields. Owning producer or admin.
func (s *CatalogService) UpdateEvent(ctx context.Context, actor domain.User, e domain.Event) (*domain.Event, error) {
	existing, err := s.events.FindByID(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	if existing.ProducerID != actor.ID && !actor.HasAdminAccess() {
		return nil, domain.ErrForbidden
	}
	return s.events.Update(ctx, e)
}

// DeleteEvent removes an event. Owning producer or admin.
func (s *CatalogService) DeleteEvent(ctx context.Context, actor domain.User, id int64) error {
	existing, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ProducerID != actor.ID && !actor.HasAdminAccess() {
		return domain.ErrForbidden
	}
	return s.events.Delete(ctx, id)
}

// ListGuides returns the admin-verified guide profiles.
func (s *CatalogService) ListGuides(ctx context.Context) ([]domain.GuideProfile, error) {
	return s.guides.ListVerified(ctx)
}

// MyGuideProfile returns the acting guide's own profile.
func (s *CatalogService) MyGuideProfile(ctx context.Context, actor domain.User) (*domain.GuideProfile, error) {
	return s.guides.FindByUserID(ctx, actor.ID)
}

// UpsertGuideProfile creates or updates the acting guide's profile.
func (s *CatalogService) UpsertGuideProfile(ctx context.Context, actor domain.User, p domain.GuideProfile) (*domain.GuideProfile, error) {
	if actor.UserType != domain.UserTypeGuide {
		return nil, domain.ErrForbidden
	}
	p.UserID = actor.ID
	profile, err := s.guides.Create(ctx, p)
	if errors.Is(err, domain.ErrConflict) {
		return s.guides.Update(ctx, p)
	}
	return profile, err
}

// VerifyGuide flips a guide's verification flag. Admin only.
func (s *CatalogService) VerifyGuide(ctx context.Context, actor domain.User, guideUserID int64, verified bool) error {
	if !actor.HasAdminAccess() {
		return domain.ErrForbidden
	}
	return s.guides.SetVerified(ctx, guideUserID, verified)
}
