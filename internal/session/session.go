package session

import (
	"context"
	"time"

	"github.com/veramar/litoral/internal/domain"
)

// Session binds a cookie value to an authenticated user. The user
// snapshot is denormalized at login time so middleware can resolve
// identity and roles without a database read; endpoints that must see
// current data re-fetch the user row.
type Session struct {
	ID        string      `json:"id"`
	UserID    int64       `json:"user_id"`
	User      domain.User `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store persists sessions. Get returns (nil, nil) when the session does
// not exist; errors are reserved for store failures.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
