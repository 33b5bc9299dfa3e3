package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/service"
	"github.com/veramar/litoral/internal/session"
)

const contextKeyUser = "current_user"

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	}
}

// SessionAuth resolves the session cookie to a fresh user record and
// injects it into the echo context. Requests without a live session
// fail with the no-session condition so clients can distinguish it
// from other errors and trigger synchronization.
func SessionAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := sessionIDFromRequest(c.Request())
			user, err := auth.CurrentUser(c.Request().Context(), sessionID)
			if err != nil {
				return err
			}
			c.Set(contextKeyUser, *user)
			return next(c)
		}
	}
}

// RequireCompleteProfile rejects users who have not finished onboarding.
func RequireCompleteProfile(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok || !user.IsProfileComplete {
			return domain.ErrForbidden
		}
		return next(c)
	}
}

// RequireAdmin rejects users without admin access.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok || !user.HasAdminAccess() {
			return domain.ErrForbidden
		}
		return next(c)
	}
}

// CurrentUser extracts the authenticated user from echo context.
func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(contextKeyUser).(domain.User)
	return user, ok
}

func sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
