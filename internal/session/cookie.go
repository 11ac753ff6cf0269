package session

import (
	"net/http"
	"time"
)

// CookieName is the session cookie name.
const CookieName = "tableside_session"

// CookieWriter writes and clears session cookies with consistent attributes.
// Secure and SameSite=None are enabled in production, where the frontend is
// served from a different origin over HTTPS.
type CookieWriter struct {
	ttl    time.Duration
	secure bool
}

// NewCookieWriter creates a CookieWriter.
func NewCookieWriter(ttl time.Duration, secure bool) *CookieWriter {
	return &CookieWriter{ttl: ttl, secure: secure}
}

// Write sets the session cookie on the response.
func (cw *CookieWriter) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cw.ttl.Seconds()),
		HttpOnly: true,
		Secure:   cw.secure,
		SameSite: cw.sameSite(),
	})
}

// Clear removes the session cookie. Clearing an absent cookie is harmless,
// which makes logout idempotent.
func (cw *CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cw.secure,
		SameSite: cw.sameSite(),
	})
}

// TokenFromRequest extracts the raw session token from the request cookie.
// Returns "" when the cookie is absent.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (cw *CookieWriter) sameSite() http.SameSite {
	// Cross-site cookies require SameSite=None, which browsers only accept
	// together with the Secure attribute.
	if cw.secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
