// Package session owns the browser session cookie.
package session

import (
	"net/http"
	"time"
)

// CookieName is the session token cookie. The token doubles as the
// X-Session-Token header value forwarded to the warehouse backend.
const CookieName = "X-Session-Token"

// TTL is how long an issued session stays valid; one working shift with
// slack on either side.
const TTL = 12 * time.Hour

// SessionCookie builds the session cookie. A negative maxAge clears it.
func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// DefaultExpiry is the expiry stamp for a session issued now.
func DefaultExpiry() time.Time {
	return time.Now().Add(TTL)
}
