package session

import (
	"net/http"
	"time"
)

// CookieName is the session cookie issued to browsers.
const CookieName = "litoral_session"

// CookieOptions defines how session cookies are issued. The frontend is
// served cross-site in production, so production cookies need
// SameSite=None with Secure and a fixed domain; development stays Lax.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

// ProductionCookieOptions returns the cross-site production policy.
func ProductionCookieOptions(domain string) CookieOptions {
	return CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Domain:   domain,
	}
}

// DevelopmentCookieOptions returns the same-site development policy.
func DevelopmentCookieOptions() CookieOptions {
	return CookieOptions{
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetCookie issues the session cookie to the client.
func SetCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
