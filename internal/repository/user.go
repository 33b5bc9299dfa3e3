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

const uniqueViolation = "23505"

const userColumns = `id, email, first_name, last_name, image_url, user_type,
	is_admin, is_profile_complete, created_at, updated_at`

// UserRepository handles user data access operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by their ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by their unique email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a first-login user with an incomplete profile and an
// unset user type. A concurrent insert for the same email surfaces as
// domain.ErrConflict via the unique constraint; callers re-fetch.
func (r *UserRepository) Create(ctx context.Context, email, firstName, lastName string, imageURL *string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`INSERT INTO users (email, first_name, last_name, image_url, user_type, is_admin, is_profile_complete)
		 VALUES ($1, $2, $3, $4, 'unset', FALSE, FALSE)
		 RETURNING `+userColumns,
		email, firstName, lastName, imageURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// UpdateImageURL sets only the profile image URL.
func (r *UserRepository) UpdateImageURL(ctx context.Context, id int64, imageURL *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET image_url = $2, updated_at = NOW() WHERE id = $1`,
		id, imageURL)
	if err != nil {
		return fmt.Errorf("update user %d image url: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CompleteProfile stores onboarding data and marks the profile complete.
func (r *UserRepository) CompleteProfile(ctx context.Context, id int64, firstName, lastName string, userType domain.UserType) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`UPDATE users
		 SET first_name = $2, last_name = $3, user_type = $4,
		     is_profile_complete = TRUE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, firstName, lastName, userType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("complete profile for user %d: %w", id, err)
	}
	return &user, nil
}

// List returns all users ordered by creation, for the admin back-office.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
