package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/veramar/litoral/internal/domain"
)

const guideColumns = `id, user_id, bio, languages, specialties, phone,
	verified, created_at, updated_at`

// GuideRepository handles guide profile data access operations.
type GuideRepository struct {
	db *sqlx.DB
}

// NewGuideRepository creates a new GuideRepository.
func NewGuideRepository(db *sqlx.DB) *GuideRepository {
	return &GuideRepository{db: db}
}

// FindByUserID retrieves the profile owned by a guide user.
func (r *GuideRepository) FindByUserID(ctx context.Context, userID int64) (*domain.GuideProfile, error) {
	var profile domain.GuideProfile
	err := r.db.GetContext(ctx, &profile,
		`SELECT `+guideColumns+` FROM guide_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find guide profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// ListVerified returns the publicly listed (admin-verified) profiles.
func (r *GuideRepository) ListVerified(ctx context.Context) ([]domain.GuideProfile, error) {
	profiles := []domain.GuideProfile{}
	err := r.db.SelectContext(ctx, &profiles,
		`SELECT `+guideColumns+` FROM guide_profiles WHERE verified ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list verified guide profiles: %w", err)
	}
	return profiles, nil
}

// Create inserts a profile for a guide user. One profile per user.
func (r *GuideRepository) Create(ctx context.Context, p domain.GuideProfile) (*domain.GuideProfile, error) {
	var profile domain.GuideProfile
	err := r.db.GetContext(ctx, &profile,
		`INSERT INTO guide_profiles (user_id, bio, languages, specialties, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+guideColumns,
		p.UserID, p.Bio, p.Languages, p.Specialties, p.Phone)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create guide profile: %w", err)
	}
	return &profile, nil
}

// Update replaces the self-editable fields of a profile. Verification
// is untouched here; see SetVerified.
func (r *GuideRepository) Update(ctx context.Context, p domain.GuideProfile) (*domain.GuideProfile, error) {
	var profile domain.GuideProfile
	err := r.db.GetContext(ctx, &profile,
		`UPDATE guide_profiles
		 SET bio = $2, languages = $3, specialties = $4, phone = $5, updated_at = NOW()
		 WHERE user_id = $1
		 RETURNING `+guideColumns,
		p.UserID, p.Bio, p.Languages, p.Specialties, p.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update guide profile for user %d: %w", p.UserID, err)
	}
	return &profile, nil
}

// SetVerified flips the admin-controlled verification flag.
func (r *GuideRepository) SetVerified(ctx context.Context, userID int64, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE guide_profiles SET verified = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, verified)
	if err != nil {
		return fmt.Errorf("set guide %d verified: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
