package api

import (
	"errors"
	"net/http"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Register creates the account and then authenticates it: a successful
// registration sets the same cookie pair as a login.
func (a *API) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "username and password are required")
			return
		}

		ident, pair, err := a.service.Register(r.Context(), service.NewAccount{
			Username: req.Username,
			Password: req.Password,
			Role:     identity.Role(req.Role),
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAdminRegistration):
				writeError(w, http.StatusForbidden, CodeAdminForbidden, "cannot register a privileged role")
			case errors.Is(err, service.ErrInvalidRole):
				writeError(w, http.StatusBadRequest, CodeBadRequest, "unknown role")
			case errors.Is(err, service.ErrUsernameExists):
				writeError(w, http.StatusBadRequest, CodeUsernameExists, "username already exists")
			default:
				a.log.Error().Err(err).Msg("registration failed")
				writeError(w, http.StatusInternalServerError, CodeInternal, "failed to register")
			}
			return
		}

		a.transport.AttachAccess(w, pair.Access)
		a.transport.AttachRefresh(w, pair.Refresh)

		a.log.Info().Str("username", ident.Username).Msg("account registered")
		returnJSON(w, http.StatusOK, SessionResponse{Identity: ident})
	}
}
