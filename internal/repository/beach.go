package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/veramar/litoral/internal/domain"
)

const beachColumns = `id, name, region, description, latitude, longitude,
	blue_flag, has_lifeguard, image_url, created_at, updated_at`

// BeachRepository handles beach data access operations.
type BeachRepository struct {
	db *sqlx.DB
}

// NewBeachRepository creates a new BeachRepository.
func NewBeachRepository(db *sqlx.DB) *BeachRepository {
	return &BeachRepository{db: db}
}

// FindByID retrieves a beach by ID.
func (r *BeachRepository) FindByID(ctx context.Context, id int64) (*domain.Beach, error) {
	var beach domain.Beach
	err := r.db.GetContext(ctx, &beach,
		`SELECT `+beachColumns+` FROM beaches WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find beach %d: %w", id, err)
	}
	return &beach, nil
}

// List returns beaches, optionally filtered by region.
func (r *BeachRepository) List(ctx context.Context, region string) ([]domain.Beach, error) {
	beaches := []domain.Beach{}
	var err error
	if region == "" {
		err = r.db.SelectContext(ctx, &beaches,
			`SELECT `+beachColumns+` FROM beaches ORDER BY name`)
	} else {
		err = r.db.SelectContext(ctx, &beaches,
			`SELECT `+beachColumns+` FROM beaches WHERE region = $1 ORDER BY name`, region)
	}
	if err != nil {
		return nil, fmt.Errorf("list beaches: %w", err)
	}
	return beaches, nil
}

// Create inserts a new beach and returns the stored row.
func (r *BeachRepository) Create(ctx context.Context, b domain.Beach) (*domain.Beach, error) {
	var beach domain.Beach
	err := r.db.GetContext(ctx, &beach,
		`INSERT INTO beaches (name, region, description, latitude, longitude, blue_flag, has_lifeguard, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+beachColumns,
		b.Name, b.Region, b.Description, b.Latitude, b.Longitude, b.BlueFlag, b.HasLifeguard, b.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("create beach: %w", err)
	}
	return &beach, nil
}

// Update replaces the mutable fields of a beach.
func (r *BeachRepository) Update(ctx context.Context, b domain.Beach) (*domain.Beach, error) {
	var beach domain.Beach
	err := r.db.GetContext(ctx, &beach,
		`UPDATE beaches
		 SET name = $2, region = $3, description = $4, latitude = $5, longitude = $6,
		     blue_flag = $7, has_lifeguard = $8, image_url = $9, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+beachColumns,
		b.ID, b.Name, b.Region, b.Description, b.Latitude, b.Longitude, b.BlueFlag, b.HasLifeguard, b.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update beach %d: %w", b.ID, err)
	}
	return &beach, nil
}

// Delete removes a beach.
func (r *BeachRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM beaches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete beach %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
