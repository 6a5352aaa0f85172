package api

import (
	"context"
	"net/http"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

type contextKey struct{ name string }

var identityKey = contextKey{"identity"}

// IdentityFrom returns the authenticated identity attached by RequireAuth.
func IdentityFrom(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(identity.Identity)
	return ident, ok
}

// RequireAuth is the credential gate for protected operations. A missing,
// malformed, tampered, or expired access credential all deny with the same
// opaque AUTHENTICATION_REQUIRED so the client's only move is refresh-or-
// login. The gate never refreshes on the server side; refresh is a client
// responsibility, which keeps the gate stateless with a single failure mode.
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded, ok := a.transport.ExtractAccess(r)
		if !ok {
			a.deny(w, r, "no access credential")
			return
		}

		claims, err := a.service.Verifier().Verify(encoded)
		if err != nil {
			a.deny(w, r, "access credential rejected")
			return
		}
		if claims.Type != token.TypeAccess {
			// a refresh token must never authorize a protected operation
			a.deny(w, r, "wrong credential type")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, claims.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// deny logs the pass/fail status only; the credential itself is never
// logged.
func (a *API) deny(w http.ResponseWriter, r *http.Request, reason string) {
	a.log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reason", reason).
		Msg("authentication required")
	writeError(w, http.StatusUnauthorized, CodeAuthenticationRequired, "authentication required")
}
