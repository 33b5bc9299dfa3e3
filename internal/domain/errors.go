package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource conflict")

	// ErrInvalidAssertion means the submitted identity assertion was
	// missing or could not be verified. The user has to sign in again.
	ErrInvalidAssertion = errors.New("invalid identity assertion")

	// ErrExpiredAssertion means the assertion verified structurally but
	// is past its expiry. Clients may transparently re-acquire a fresh
	// one and retry.
	ErrExpiredAssertion = errors.New("expired identity assertion")

	// ErrNoSession means no backend session exists for the request.
	// For a signed-in provider user this is the expected transient state
	// that triggers synchronization; it is never surfaced to the user.
	ErrNoSession = errors.New("no backend session")

	// ErrSessionStore means the session store failed to persist or
	// destroy a session. A verification request that hits this must not
	// report success: the client treats 200 as proof of a session.
	ErrSessionStore = errors.New("session store failure")
)

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
