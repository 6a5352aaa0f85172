// Package api exposes the session endpoints over HTTP and the credential
// gate protecting the rest of the portal's routes. Tokens travel in cookies
// through the CredentialTransport abstraction, so handlers never touch
// http.Cookie directly.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/service"
)

// Error codes surfaced to clients.
const (
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeRefreshTokenMissing    = "REFRESH_TOKEN_MISSING"
	CodeInvalidRefreshToken    = "INVALID_REFRESH_TOKEN"
	CodeUsernameExists         = "USERNAME_EXISTS"
	CodeAdminForbidden         = "ADMIN_REGISTRATION_FORBIDDEN"
	CodeBadRequest             = "BAD_REQUEST"
	CodeInternal               = "INTERNAL"
)

// API carries the handler dependencies. Handlers are factory methods
// returning http.HandlerFunc.
type API struct {
	service   *service.Service
	transport CredentialTransport
	log       zerolog.Logger
}

func New(svc *service.Service, transport CredentialTransport, log zerolog.Logger) *API {
	return &API{
		service:   svc,
		transport: transport,
		log:       log,
	}
}

// SessionResponse is the body of every successful session operation: the
// public-safe identity projection, never internal account fields.
type SessionResponse struct {
	Identity identity.Identity `json:"identity"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid json body")
		return false
	}
	return true
}

func returnJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	returnJSON(w, status, ErrorResponse{Code: code, Error: message})
}
