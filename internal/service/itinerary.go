package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/genai"
)

// ItineraryStore defines itinerary persistence.
type ItineraryStore interface {
	Create(ctx context.Context, it domain.Itinerary) (*domain.Itinerary, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Itinerary, error)
}

// ItineraryService generates trip plans through the external text
// generator and stores the results per user.
type ItineraryService struct {
	itineraries ItineraryStore
	generator   genai.TextGenerator
}

// NewItineraryService creates a new ItineraryService.
func NewItineraryService(itineraries ItineraryStore, generator genai.TextGenerator) *ItineraryService {
	return &ItineraryService{itineraries: itineraries, generator: generator}
}

// Generate produces and stores an itinerary for the acting user.
func (s *ItineraryService) Generate(ctx context.Context, actor domain.User, region string, days int, interests []string) (*domain.Itinerary, error) {
	if region == "" {
		return nil, fmt.Errorf("%w: region is required", domain.ErrInvalidInput)
	}
	if days < 1 || days > 30 {
		return nil, fmt.Errorf("%w: days must be between 1 and 30", domain.ErrInvalidInput)
	}

	joined := strings.Join(interests, ", ")
	prompt := fmt.Sprintf(
		"Plan a %d-day coastal tourism itinerary for the %s region. Interests: %s.",
		days, region, joined)

	content, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}

	return s.itineraries.Create(ctx, domain.Itinerary{
		UserID:    actor.ID,
		Region:    region,
		Days:      days,
		Interests: joined,
		Content:   content,
		Model:     s.generator.Model(),
	})
}

// MyItineraries lists the acting user's stored itineraries.
func (s *ItineraryService) MyItineraries(ctx context.Context, actor domain.User) ([]domain.Itinerary, error) {
	return s.itineraries.ListByUser(ctx, actor.ID)
}
