package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

// Refresh verifies a refresh token and re-issues an access token for its
// subject. Only the access token is re-issued; the refresh token is
// deliberately not rotated, so the refresh cookie keeps its original expiry
// for its whole 30-day lifetime. Rotating it would change client-visible
// session semantics.
//
// The subject is looked up in the account store so a role change since the
// refresh token was issued is reflected in the new access token. A token of
// the wrong type, an expired or tampered token, or a deleted account all
// fail with ErrRefreshInvalid.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (
	identity.Identity,
	token.Token,
	error,
) {
	claims, err := s.verifier.Verify(refreshToken)
	if err != nil {
		return identity.Identity{}, token.Token{}, ErrRefreshInvalid
	}
	if claims.Type != token.TypeRefresh {
		return identity.Identity{}, token.Token{}, ErrRefreshInvalid
	}

	account, err := s.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return identity.Identity{}, token.Token{}, ErrRefreshInvalid
		}
		return identity.Identity{}, token.Token{}, fmt.Errorf("%w: fetch account: %v", ErrInternal, err)
	}

	ident := account.Identity()
	access, err := s.issuer.IssueAccess(ident)
	if err != nil {
		return identity.Identity{}, token.Token{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return ident, access, nil
}
