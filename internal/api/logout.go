package api

import "net/http"

// Logout clears both session cookies by replacing them with already-expired
// ones. Idempotent: logging out without a session is not an error.
func (a *API) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.transport.Clear(w)
		w.WriteHeader(http.StatusOK)
	}
}
