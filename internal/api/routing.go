package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the session routes. Protected portal routes mount
// RequireAuth themselves; /api/auth/session is the one protected route owned
// by this package.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/login", a.Login()).Methods(http.MethodPost)
	auth.HandleFunc("/register", a.Register()).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", a.Refresh()).Methods(http.MethodPost)
	auth.HandleFunc("/logout", a.Logout()).Methods(http.MethodPost)
	auth.Handle("/session", a.RequireAuth(a.Session())).Methods(http.MethodGet)

	return r
}
