package api

import (
	"net/http"
	"time"

	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

// Cookie names for the two session credentials.
const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// CredentialTransport moves tokens between HTTP messages and the token
// layer. Issuing and verifying stay transport-agnostic behind it: cookies in
// production, and anything (headers, in-memory) in tests.
type CredentialTransport interface {
	AttachAccess(w http.ResponseWriter, t token.Token)
	AttachRefresh(w http.ResponseWriter, t token.Token)
	ExtractAccess(r *http.Request) (string, bool)
	ExtractRefresh(r *http.Request) (string, bool)
	Clear(w http.ResponseWriter)
}

// CookieTransport carries tokens in http-only cookies. Outside local
// development the cookies are Secure with SameSite=Strict; local development
// relaxes them to plain-http Lax so the frontend dev server can log in.
type CookieTransport struct {
	localDev bool
}

func NewCookieTransport(localDev bool) *CookieTransport {
	return &CookieTransport{localDev: localDev}
}

var _ CredentialTransport = (*CookieTransport)(nil)

func (c *CookieTransport) AttachAccess(w http.ResponseWriter, t token.Token) {
	http.SetCookie(w, c.sessionCookie(AccessCookieName, t))
}

func (c *CookieTransport) AttachRefresh(w http.ResponseWriter, t token.Token) {
	http.SetCookie(w, c.sessionCookie(RefreshCookieName, t))
}

func (c *CookieTransport) ExtractAccess(r *http.Request) (string, bool) {
	return extractCookie(r, AccessCookieName)
}

func (c *CookieTransport) ExtractRefresh(r *http.Request) (string, bool) {
	return extractCookie(r, RefreshCookieName)
}

// Clear replaces both cookies with already-expired ones. Safe to call when
// no session exists.
func (c *CookieTransport) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   !c.localDev,
			SameSite: c.sameSite(),
		})
	}
}

func (c *CookieTransport) sessionCookie(name string, t token.Token) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    t.Value,
		Path:     "/",
		MaxAge:   int(time.Until(t.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   !c.localDev,
		SameSite: c.sameSite(),
	}
}

func (c *CookieTransport) sameSite() http.SameSite {
	if c.localDev {
		return http.SameSiteLaxMode
	}
	return http.SameSiteStrictMode
}

func extractCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
