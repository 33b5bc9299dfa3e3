package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/service"
)

// CatalogHandler handles content listing endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", domain.ErrInvalidInput)
	}
	return id, nil
}

// ListBeaches returns beaches, optionally filtered by ?region=.
func (h *CatalogHandler) ListBeaches(c echo.Context) error {
	beaches, err := h.catalog.ListBeaches(c.Request().Context(), c.QueryParam("region"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, beaches)
}

// GetBeach returns one beach.
func (h *CatalogHandler) GetBeach(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	beach, err := h.catalog.GetBeach(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, beach)
}

type beachRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Region       string  `json:"region" validate:"required,max=100"`
	Description  string  `json:"description"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	BlueFlag     bool    `json:"blue_flag"`
	HasLifeguard bool    `json:"has_lifeguard"`
	ImageURL     *string `json:"image_url"`
}

func (b beachRequest) toDomain(id int64) domain.Beach {
	return domain.Beach{
		ID:           id,
		Name:         b.Name,
		Region:       b.Region,
		Description:  b.Description,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		BlueFlag:     b.BlueFlag,
		HasLifeguard: b.HasLifeguard,
		ImageURL:     b.ImageURL,
	}
}

// CreateBeach adds a beach. Admin only.
func (h *CatalogHandler) CreateBeach(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body beachRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	beach, err := h.catalog.CreateBeach(c.Request().Context(), actor, body.toDomain(0))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, beach)
}

// UpdateBeach replaces a beach. Admin only.
func (h *CatalogHandler) UpdateBeach(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body beachRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	beach, err := h.catalog.UpdateBeach(c.Request().Context(), actor, body.toDomain(id))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, beach)
}

// DeleteBeach removes a beach. Admin only.
func (h *CatalogHandler) DeleteBeach(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteBeach(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTrails returns trails, optionally filtered by ?difficulty=.
func (h *CatalogHandler) ListTrails(c echo.Context) error {
	trails, err := h.catalog.ListTrails(c.Request().Context(),
		domain.TrailDifficulty(c.QueryParam("difficulty")))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, trails)
}

// GetTrail returns one trail.
func (h *CatalogHandler) GetTrail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	trail, err := h.catalog.GetTrail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, trail)
}

type trailRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Region          string  `json:"region" validate:"required,max=100"`
	Description     string  `json:"description"`
	DistanceKm      float64 `json:"distance_km" validate:"gt=0"`
	Difficulty      string  `json:"difficulty" validate:"required,oneof=easy moderate hard"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0"`
	ImageURL        *string `json:"image_url"`
}

func (t trailRequest) toDomain(id int64) domain.Trail {
	return domain.Trail{
		ID:              id,
		Name:            t.Name,
		Region:          t.Region,
		Description:     t.Description,
		DistanceKm:      t.DistanceKm,
		Difficulty:      domain.TrailDifficulty(t.Difficulty),
		DurationMinutes: t.DurationMinutes,
		ImageURL:        t.ImageURL,
	}
}

// CreateTrail adds a trail. Admin only.
func (h *CatalogHandler) CreateTrail(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body trailRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	trail, err := h.catalog.CreateTrail(c.Request().Context(), actor, body.toDomain(0))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, trail)
}

// UpdateTrail replaces a trail. Admin only.
func (h *CatalogHandler) UpdateTrail(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body trailRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	trail, err := h.catalog.UpdateTrail(c.Request().Context(), actor, body.toDomain(id))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, trail)
}

// DeleteTrail removes a trail. Admin only.
func (h *CatalogHandler) DeleteTrail(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteTrail(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTours returns all boat tours.
func (h *CatalogHandler) ListTours(c echo.Context) error {
	tours, err := h.catalog.ListTours(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, tours)
}

// GetTour returns one boat tour.
func (h *CatalogHandler) GetTour(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	tour, err := h.catalog.GetTour(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, tour)
}

type tourRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Description     string  `json:"description"`
	DepartureHarbor string  `json:"departure_harbor" validate:"required,max=200"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0"`
	Capacity        int     `json:"capacity" validate:"gt=0"`
	PriceCents      int64   `json:"price_cents" validate:"gte=0"`
	ImageURL        *string `json:"image_url"`
}

func (t tourRequest) toDomain(id int64) domain.BoatTour {
	return domain.BoatTour{
		ID:              id,
		Name:            t.Name,
		Description:     t.Description,
		DepartureHarbor: t.DepartureHarbor,
		DurationMinutes: t.DurationMinutes,
		Capacity:        t.Capacity,
		PriceCents:      t.PriceCents,
		ImageURL:        t.ImageURL,
	}
}

// CreateTour adds a boat tour for the acting operator.
func (h *CatalogHandler) CreateTour(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body tourRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	tour, err := h.catalog.CreateTour(c.Request().Context(), actor, body.toDomain(0))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, tour)
}

// UpdateTour replaces a tour. Owning operator or admin.
func (h *CatalogHandler) UpdateTour(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body tourRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	tour, err := h.catalog.UpdateTour(c.Request().Context(), actor, body.toDomain(id))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, tour)
}

// DeleteTour removes a tour. Owning operator or admin.
func (h *CatalogHandler) DeleteTour(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteTour(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEvents returns upcoming events.
func (h *CatalogHandler) ListEvents(c echo.Context) error {
	events, err := h.catalog.ListUpcomingEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, events)
}

// GetEvent returns one event.
func (h *CatalogHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	event, err := h.catalog.GetEvent(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, event)
}

type eventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	Venue       string    `json:"venue" validate:"required,max=200"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	PriceCents  int64     `json:"price_cents" validate:"gte=0"`
	ImageURL    *string   `json:"image_url"`
}

func (e eventRequest) toDomain(id int64) domain.Event {
	return domain.Event{
		ID:          id,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		PriceCents:  e.PriceCents,
		ImageURL:    e.ImageURL,
	}
}

// CreateEvent adds an event for the acting producer.
func (h *CatalogHandler) CreateEvent(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body eventRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	event, err := h.catalog.CreateEvent(c.Request().Context(), actor, body.toDomain(0))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, event)
}

// UpdateEvent replaces an event. Owning producer or admin.
func (h *CatalogHandler) UpdateEvent(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body eventRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	event, err := h.catalog.UpdateEvent(c.Request().Context(), actor, body.toDomain(id))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, event)
}

// DeleteEvent removes an event. Owning producer or admin.
func (h *CatalogHandler) DeleteEvent(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteEvent(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGuides returns verified guide profiles.
func (h *CatalogHandler) ListGuides(c echo.Context) error {
	guides, err := h.catalog.ListGuides(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, guides)
}

type guideProfileRequest struct {
	Bio         string `json:"bio" validate:"max=2000"`
	Languages   string `json:"languages" validate:"max=500"`
	Specialties string `json:"specialties" validate:"max=500"`
	Phone       string `json:"phone" validate:"max=50"`
}

// UpsertGuideProfile creates or updates the acting guide's profile.
func (h *CatalogHandler) UpsertGuideProfile(c echo.Context) error {
	actor, _ := CurrentUser(c)
	var body guideProfileRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	profile, err := h.catalog.UpsertGuideProfile(c.Request().Context(), actor, domain.GuideProfile{
		Bio:         body.Bio,
		Languages:   body.Languages,
		Specialties: body.Specialties,
		Phone:       body.Phone,
	})
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, profile)
}

// MyGuideProfile returns the acting guide's own profile.
func (h *CatalogHandler) MyGuideProfile(c echo.Context) error {
	actor, _ := CurrentUser(c)
	profile, err := h.catalog.MyGuideProfile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, profile)
}

type verifyGuideRequest struct {
	Verified bool `json:"verified"`
}

// VerifyGuide flips a guide's verification flag. Admin only.
func (h *CatalogHandler) VerifyGuide(c echo.Context) error {
	actor, _ := CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body verifyGuideRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := h.catalog.VerifyGuide(c.Request().Context(), actor, id, body.Verified); err != nil {
		return err
	}
	return JSON(c, http.StatusOK, map[string]bool{"verified": body.Verified})
}
