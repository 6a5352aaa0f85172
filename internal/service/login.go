package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
)

// Login verifies the credentials and, on success, issues a fresh
// access/refresh pair for the account's identity. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials so the response never
// reveals whether the username exists.
func (s *Service) Login(
	ctx context.Context,
	username string,
	password string,
) (
	identity.Identity,
	TokenPair,
	error,
) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return identity.Identity{}, TokenPair{}, ErrInvalidCredentials
		}
		return identity.Identity{}, TokenPair{}, fmt.Errorf("%w: fetch account: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return identity.Identity{}, TokenPair{}, ErrInvalidCredentials
	}

	ident := account.Identity()
	pair, err := s.issueSession(ident)
	if err != nil {
		return identity.Identity{}, TokenPair{}, err
	}

	return ident, pair, nil
}
