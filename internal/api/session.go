package api

import "net/http"

// Session echoes the authenticated identity. It sits behind RequireAuth and
// gives clients a cheap way to confirm a provisional cached session.
func (a *API) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, CodeAuthenticationRequired, "authentication required")
			return
		}
		returnJSON(w, http.StatusOK, SessionResponse{Identity: ident})
	}
}
