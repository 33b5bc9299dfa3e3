package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/identity"
	"github.com/veramar/litoral/internal/session"
)

// UserStore defines the user data access interface consumed by AuthService.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, email, firstName, lastName string, imageURL *string) (*domain.User, error)
	UpdateImageURL(ctx context.Context, id int64, imageURL *string) error
	CompleteProfile(ctx context.Context, id int64, firstName, lastName string, userType domain.UserType) (*domain.User, error)
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	FrontendURL        string
	SessionTTL         time.Duration
}

// AuthService reconciles Google identities with local user records and
// owns the session lifecycle.
type AuthService struct {
	users      UserStore
	sessions   session.Store
	verifier   identity.Verifier
	sessionTTL time.Duration
	google     *oauth2.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, sessions session.Store, verifier identity.Verifier, cfg AuthConfig) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		verifier:   verifier,
		sessionTTL: cfg.SessionTTL,
		google: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     googleOAuth.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
			RedirectURL:  cfg.FrontendURL + "/auth/google/callback",
		},
	}
}

// GoogleAuthURL returns the Google OAuth authorization URL for the
// browser-redirect login path.
func (s *AuthService) GoogleAuthURL(state string) string {
	return s.google.AuthCodeURL(state)
}

// GoogleCallback exchanges an authorization code for an ID token and
// runs the standard verification flow on it.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*domain.User, *session.Session, error) {
	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: google token exchange: %v", domain.ErrInvalidAssertion, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, nil, fmt.Errorf("%w: google did not return id_token", domain.ErrInvalidAssertion)
	}

	return s.VerifyAssertion(ctx, rawIDToken)
}

// VerifyAssertion verifies an identity assertion, upserts the local
// user record by email, and establishes a session. The session write
// must succeed before this returns: a 200 is the client's proof that a
// session exists.
func (s *AuthService) VerifyAssertion(ctx context.Context, rawToken string) (*domain.User, *session.Session, error) {
	if rawToken == "" {
		return nil, nil, domain.ErrInvalidAssertion
	}

	id, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		if errors.Is(err, identity.ErrExpiredToken) {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrExpiredAssertion, err)
		}
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidAssertion, err)
	}

	user, err := s.upsertByIdentity(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, sess, nil
}

// upsertByIdentity looks up the user by the assertion's email claim.
// Absent: create with an incomplete profile and unset type. Present: if
// the picture claim differs from the stored image URL, update only that
// field. Concurrent first logins race on the email unique constraint;
// the loser re-fetches and proceeds.
func (s *AuthService) upsertByIdentity(ctx context.Context, id *identity.Identity) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, id.Email)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.Create(ctx, id.Email, id.GivenName, id.FamilyName, optional(id.Picture))
		if errors.Is(err, domain.ErrConflict) {
			user, err = s.users.FindByEmail(ctx, id.Email)
		}
		if err != nil {
			return nil, fmt.Errorf("create user for %s: %w", id.Email, err)
		}
		slog.Info("user created from sign-in", "user_id", user.ID)
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	if id.Picture != "" && (user.ImageURL == nil || *user.ImageURL != id.Picture) {
		if err := s.users.UpdateImageURL(ctx, user.ID, &id.Picture); err != nil {
			return nil, fmt.Errorf("update image url for user %d: %w", user.ID, err)
		}
		user.ImageURL = &id.Picture
	}

	return user, nil
}

func (s *AuthService) establishSession(ctx context.Context, user *domain.User) (*session.Session, error) {
	sid, err := session.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionStore, err)
	}

	now := time.Now()
	sess := session.Session{
		ID:        sid,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionStore, err)
	}
	return &sess, nil
}

// CurrentUser resolves a session cookie value to a fresh user record.
// A session whose user row no longer exists is destroyed.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domain.ErrNoSession
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionStore, err)
	}
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	if sess.Expired(time.Now()) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			slog.Error("delete expired session", "error", err)
		}
		return nil, domain.ErrNoSession
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			slog.Error("delete orphaned session", "error", err)
		}
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Session resolves a session cookie value to the stored session, for
// middleware that only needs the denormalized snapshot.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrNoSession
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionStore, err)
	}
	if sess == nil || sess.Expired(time.Now()) {
		return nil, domain.ErrNoSession
	}
	return sess, nil
}

// Logout destroys the session. A store failure must surface; the
// client relies on logout completing.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionStore, err)
	}
	return nil
}

// CompleteProfile finishes onboarding. The admin type is never
// self-assignable.
func (s *AuthService) CompleteProfile(ctx context.Context, userID int64, firstName, lastName string, userType domain.UserType) (*domain.User, error) {
	if !userType.Valid() || userType == domain.UserTypeUnset || userType == domain.UserTypeAdmin {
		return nil, fmt.Errorf("%w: user type %q not assignable", domain.ErrInvalidInput, userType)
	}
	return s.users.CompleteProfile(ctx, userID, firstName, lastName, userType)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
