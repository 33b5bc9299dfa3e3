package handler

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/service"
	"github.com/veramar/litoral/internal/session"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies session.CookieOptions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookies session.CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

type verifyRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// Verify accepts a Google ID token, reconciles the local user record,
// and establishes the session. The session cookie is only set after
// the session write has succeeded.
func (h *AuthHandler) Verify(c echo.Context) error {
	var body verifyRequest
	if err := c.Bind(&body); err != nil {
		return domain.ErrInvalidAssertion
	}
	if body.IDToken == "" {
		return domain.ErrInvalidAssertion
	}

	user, sess, err := h.auth.VerifyAssertion(c.Request().Context(), body.IDToken)
	if err != nil {
		return err
	}

	session.SetCookie(c.Response(), sess.ID, sess.ExpiresAt, h.cookies)
	return JSON(c, http.StatusOK, user)
}

// Me returns the current user for the session cookie. A session whose
// user no longer exists has already been destroyed by the service.
func (h *AuthHandler) Me(c echo.Context) error {
	sessionID := sessionIDFromRequest(c.Request())
	user, err := h.auth.CurrentUser(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, user)
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := sessionIDFromRequest(c.Request())
	if err := h.auth.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}
	session.ClearCookie(c.Response(), h.cookies)
	return JSON(c, http.StatusOK, map[string]string{"status": "logged_out"})
}

type completeProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	UserType  string `json:"user_type" validate:"required"`
}

// CompleteProfile finishes onboarding for the authenticated user.
func (h *AuthHandler) CompleteProfile(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var body completeProfileRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	user, err := h.auth.CompleteProfile(c.Request().Context(), actor.ID,
		body.FirstName, body.LastName, domain.UserType(body.UserType))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, user)
}

// GoogleRedirect sends the browser to Google's consent page. This is
// the non-SPA login entry point; the SPA posts ID tokens to Verify.
func (h *AuthHandler) GoogleRedirect(c echo.Context) error {
	state := generateState()
	c.SetCookie(&http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})
	return c.Redirect(http.StatusTemporaryRedirect, h.auth.GoogleAuthURL(state))
}

// GoogleCallback handles the OAuth callback from Google and establishes
// a session the same way Verify does.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if err := validateOAuthState(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	code := c.QueryParam("code")
	if code == "" {
		return fmt.Errorf("%w: missing code parameter", domain.ErrInvalidInput)
	}

	user, sess, err := h.auth.GoogleCallback(c.Request().Context(), code)
	if err != nil {
		return err
	}

	session.SetCookie(c.Response(), sess.ID, sess.ExpiresAt, h.cookies)
	return JSON(c, http.StatusOK, user)
}

func generateState() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "fallback-state"
	}
	return base64.URLEncoding.EncodeToString(b)
}

func validateOAuthState(c echo.Context) error {
	cookie, err := c.Cookie("oauth_state")
	if err != nil {
		return fmt.Errorf("missing oauth_state cookie")
	}

	queryState := c.QueryParam("state")
	if queryState == "" || queryState != cookie.Value {
		return fmt.Errorf("state mismatch")
	}
	return nil
}
