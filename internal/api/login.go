package api

import (
	"errors"
	"net/http"

	"github.com/khaledsAlshibani/portal-auth/internal/service"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "username and password are required")
			return
		}

		ident, pair, err := a.service.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				// same response for unknown user and wrong password
				writeError(w, http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials")
				return
			}
			a.log.Error().Err(err).Msg("login failed")
			writeError(w, http.StatusInternalServerError, CodeInternal, "failed to login")
			return
		}

		a.transport.AttachAccess(w, pair.Access)
		a.transport.AttachRefresh(w, pair.Refresh)

		a.log.Info().Str("username", ident.Username).Msg("login")
		returnJSON(w, http.StatusOK, SessionResponse{Identity: ident})
	}
}
