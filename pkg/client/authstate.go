package client

import (
	"sync"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
)

// AuthState is the client-held cache of the current session: the identity
// returned by the last successful login, registration, or refresh, or
// nothing. It is written only by session endpoint outcomes and by the
// refresh coordinator; everything else just reads it. A mutex guards the
// identity because requests run on arbitrary goroutines.
type AuthState struct {
	mu    sync.RWMutex
	ident *identity.Identity
}

// Set replaces the cached identity after a successful session operation.
func (s *AuthState) Set(ident identity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = &ident
}

// Clear drops the cached identity after logout or an unrecoverable refresh
// failure.
func (s *AuthState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = nil
}

// Current returns the cached identity, if any.
func (s *AuthState) Current() (identity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ident == nil {
		return identity.Identity{}, false
	}
	return *s.ident, true
}

// IsAuthenticated reports whether an identity is cached.
func (s *AuthState) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Restore loads an identity persisted by the application across restarts.
// The restored state is provisional: it stands until the next refresh or
// protected call confirms or clears it.
func (s *AuthState) Restore(ident identity.Identity) {
	s.Set(ident)
}
