package api

import (
	"errors"
	"net/http"

	"github.com/khaledsAlshibani/portal-auth/internal/service"
)

// Refresh exchanges a valid refresh cookie for a new access cookie. Only the
// access token is replaced; the refresh cookie is left untouched. Expired,
// tampered, and wrong-type tokens (an access token presented here) all
// surface INVALID_REFRESH_TOKEN so the client knows to re-login.
func (a *API) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encoded, ok := a.transport.ExtractRefresh(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, CodeRefreshTokenMissing, "refresh token missing")
			return
		}

		ident, access, err := a.service.Refresh(r.Context(), encoded)
		if err != nil {
			if errors.Is(err, service.ErrRefreshInvalid) {
				writeError(w, http.StatusUnauthorized, CodeInvalidRefreshToken, "invalid refresh token")
				return
			}
			a.log.Error().Err(err).Msg("refresh failed")
			writeError(w, http.StatusInternalServerError, CodeInternal, "failed to refresh")
			return
		}

		a.transport.AttachAccess(w, access)

		a.log.Debug().Str("username", ident.Username).Msg("access token refreshed")
		returnJSON(w, http.StatusOK, SessionResponse{Identity: ident})
	}
}
