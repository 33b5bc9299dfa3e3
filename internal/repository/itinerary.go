package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/veramar/litoral/internal/domain"
)

const itineraryColumns = `id, user_id, region, days, interests, content, model, created_at`

// ItineraryRepository stores generated itineraries.
type ItineraryRepository struct {
	db *sqlx.DB
}

// NewItineraryRepository creates a new ItineraryRepository.
func NewItineraryRepository(db *sqlx.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Create inserts a generated itinerary and returns the stored row.
func (r *ItineraryRepository) Create(ctx context.Context, it domain.Itinerary) (*domain.Itinerary, error) {
	var itinerary domain.Itinerary
	err := r.db.GetContext(ctx, &itinerary,
		`INSERT INTO itineraries (user_id, region, days, interests, content, model)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+itineraryColumns,
		it.UserID, it.Region, it.Days, it.Interests, it.Content, it.Model)
	if err != nil {
		return nil, fmt.Errorf("create itinerary: %w", err)
	}
	return &itinerary, nil
}

// ListByUser returns a user's itineraries, newest first.
func (r *ItineraryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Itinerary, error) {
	itineraries := []domain.Itinerary{}
	err := r.db.SelectContext(ctx, &itineraries,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list itineraries for user %d: %w", userID, err)
	}
	return itineraries, nil
}
