// Package service implements the session business logic: credential
// verification, registration, token issuance, and refresh. It depends on the
// AccountStore interface for persistence and on the token package for the
// signed token format.
package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrAdminRegistration  = errors.New("privileged role cannot be self-assigned")
	ErrInvalidRole        = errors.New("unknown role")
	ErrRefreshInvalid     = errors.New("refresh token invalid")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInternal           = errors.New("internal error")
)

// PasswordMode controls bcrypt cost for password hashing.
// Use PasswordModeProduction for real deployments and PasswordModeTesting
// only in tests, where hashing dominates runtime otherwise.
type PasswordMode int

const (
	PasswordModeProduction PasswordMode = iota
	PasswordModeTesting
)

// Cost returns the bcrypt cost for this mode.
func (m PasswordMode) Cost() int {
	if m == PasswordModeTesting {
		return bcrypt.MinCost
	}
	return bcrypt.DefaultCost
}

// TokenPair is the access/refresh pair created atomically at login and
// registration.
type TokenPair struct {
	Access  token.Token
	Refresh token.Token
}

// Service coordinates authentication, registration, and token operations.
type Service struct {
	accounts     AccountStore
	issuer       *token.Issuer
	verifier     *token.Verifier
	passwordMode PasswordMode
}

func New(
	accounts AccountStore,
	issuer *token.Issuer,
	verifier *token.Verifier,
	passwordMode PasswordMode,
) *Service {
	return &Service{
		accounts:     accounts,
		issuer:       issuer,
		verifier:     verifier,
		passwordMode: passwordMode,
	}
}

// Verifier exposes the token verifier for the credential gate.
func (s *Service) Verifier() *token.Verifier {
	return s.verifier
}

// issueSession mints the access/refresh pair for an authenticated identity.
func (s *Service) issueSession(ident identity.Identity) (TokenPair, error) {
	access, err := s.issuer.IssueAccess(ident)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	refresh, err := s.issuer.IssueRefresh(ident)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}
