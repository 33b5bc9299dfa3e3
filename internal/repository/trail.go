package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/veramar/litoral/internal/domain"
)

const trailColumns = `id, name, region, description, distance_km, difficulty,
	duration_minutes, image_url, created_at, updated_at`

// TrailRepository handles trail data access operations.
type TrailRepository struct {
	db *sqlx.DB
}

// NewTrailRepository creates a new TrailRepository.
func NewTrailRepository(db *sqlx.DB) *TrailRepository {
	return &TrailRepository{db: db}
}

// FindByID retrieves a trail by ID.
func (r *TrailRepository) FindByID(ctx context.Context, id int64) (*domain.Trail, error) {
	var trail domain.Trail
	err := r.db.GetContext(ctx, &trail,
		`SELECT `+trailColumns+` FROM trails WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find trail %d: %w", id, err)
	}
	return &trail, nil
}

// List returns trails, optionally filtered by difficulty.
func (r *TrailRepository) List(ctx context.Context, difficulty domain.TrailDifficulty) ([]domain.Trail, error) {
	trails := []domain.Trail{}
	var err error
	if difficulty == "" {
		err = r.db.SelectContext(ctx, &trails,
			`SELECT `+trailColumns+` FROM trails ORDER BY name`)
	} else {
		err = r.db.SelectContext(ctx, &trails,
			`SELECT `+trailColumns+` FROM trails WHERE difficulty = $1 ORDER BY name`, difficulty)
	}
	if err != nil {
		return nil, fmt.Errorf("list trails: %w", err)
	}
	return trails, nil
}

// Create inserts a new trail and returns the stored row.
func (r *TrailRepository) Create(ctx context.Context, t domain.Trail) (*domain.Trail, error) {
	var trail domain.Trail
	err := r.db.GetContext(ctx, &trail,
		`INSERT INTO trails (name, region, description, distance_km, difficulty, duration_minutes, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+trailColumns,
		t.Name, t.Region, t.Description, t.DistanceKm, t.Difficulty, t.DurationMinutes, t.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("create trail: %w", err)
	}
	return &trail, nil
}

// Update replaces the mutable fields of a trail.
func (r *TrailRepository) Update(ctx context.Context, t domain.Trail) (*domain.Trail, error) {
	var trail domain.Trail
	err := r.db.GetContext(ctx, &trail,
		`UPDATE trails
		 SET name = $2, region = $3, description = $4, distance_km = $5,
		     difficulty = $6, duration_minutes = $7, image_url = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+trailColumns,
		t.ID, t.Name, t.Region, t.Description, t.DistanceKm, t.Difficulty, t.DurationMinutes, t.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update trail %d: %w", t.ID, err)
	}
	return &trail, nil
}

// Delete removes a trail.
func (r *TrailRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trails WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trail %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
