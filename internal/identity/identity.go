package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken means the assertion is missing, malformed, or
	// fails signature/audience checks.
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrExpiredToken means the assertion verified but is past expiry.
	ErrExpiredToken = errors.New("identity: expired token")
)

// Identity is the claim set extracted from a verified assertion.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
	Picture       string
}

// Verifier checks an identity assertion issued by an external provider
// and returns the identity it asserts. Implementations must return
// ErrExpiredToken for expiry and ErrInvalidToken for everything else.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}
