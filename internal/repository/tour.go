package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/veramar/litoral/internal/domain"
)

const tourColumns = `id, operator_id, name, description, departure_harbor,
	duration_minutes, capacity, price_cents, image_url, created_at, updated_at`

// TourRepository handles boat tour data access operations.
type TourRepository struct {
	db *sqlx.DB
}

// NewTourRepository creates a new TourRepository.
func NewTourRepository(db *sqlx.DB) *TourRepository {
	return &TourRepository{db: db}
}

// FindByID retrieves a boat tour by ID.
func (r *TourRepository) FindByID(ctx context.Context, id int64) (*domain.BoatTour, error) {
	var tour domain.BoatTour
	err := r.db.GetContext(ctx, &tour,
		`SELECT `+tourColumns+` FROM boat_tours WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find boat tour %d: %w", id, err)
	}
	return &tour, nil
}

// List returns all boat tours; pass operatorID > 0 to filter by owner.
func (r *TourRepository) List(ctx context.Context, operatorID int64) ([]domain.BoatTour, error) {
	tours := []domain.BoatTour{}
	var err error
	if operatorID > 0 {
		err = r.db.SelectContext(ctx, &tours,
			`SELECT `+tourColumns+` FROM boat_tours WHERE operator_id = $1 ORDER BY name`, operatorID)
	} else {
		err = r.db.SelectContext(ctx, &tours,
			`SELECT `+tourColumns+` FROM boat_tours ORDER BY name`)
	}
	if err != nil {
		return nil, fmt.Errorf("list boat tours: %w", err)
	}
	return tours, nil
}

// Create inserts a new boat tour and returns the stored row.
func (r *TourRepository) Create(ctx context.Context, t domain.BoatTour) (*domain.BoatTour, error) {
	var tour domain.BoatTour
	err := r.db.GetContext(ctx, &tour,
		`INSERT INTO boat_tours (operator_id, name, description, departure_harbor, duration_minutes, capacity, price_cents, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+tourColumns,
		t.OperatorID, t.Name, t.Description, t.DepartureHarbor, t.DurationMinutes, t.Capacity, t.PriceCents, t.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("create boat tour: %w", err)
	}
	return &tour, nil
}

// Update replaces the mutable fields of a boat tour.
func (r *TourRepository) Update(ctx context.Context, t domain.BoatTour) (*domain.BoatTour, error) {
	var tour domain.BoatTour
	err := r.db.GetContext(ctx, &tour,
		`UPDATE boat_tours
		 SET name = $2, description = $3, departure_harbor = $4, duration_minutes = $5,
		     capacity = $6, price_cents = $7, image_url = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+tourColumns,
		t.ID, t.Name, t.Description, t.DepartureHarbor, t.DurationMinutes, t.Capacity, t.PriceCents, t.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update boat tour %d: %w", t.ID, err)
	}
	return &tour, nil
}

// Delete removes a boat tour.
func (r *TourRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boat_tours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete boat tour %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
