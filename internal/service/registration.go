package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
)

// NewAccount is the registration input. An empty Role defaults to RoleUser;
// a privileged role is rejected before anything is written.
type NewAccount struct {
	Username string
	Password string
	Role     identity.Role
}

// Register stores the account and then authenticates it exactly like Login:
// registration implicitly starts a session.
func (s *Service) Register(
	ctx context.Context,
	req NewAccount,
) (
	identity.Identity,
	TokenPair,
	error,
) {
	role := req.Role
	if role == "" {
		role = identity.RoleUser
	}
	if role.Privileged() {
		return identity.Identity{}, TokenPair{}, ErrAdminRegistration
	}
	if !role.Valid() {
		return identity.Identity{}, TokenPair{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.passwordMode.Cost())
	if err != nil {
		return identity.Identity{}, TokenPair{}, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	account := Account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return identity.Identity{}, TokenPair{}, ErrUsernameExists
		}
		return identity.Identity{}, TokenPair{}, fmt.Errorf("%w: insert account: %v", ErrInternal, err)
	}

	ident := account.Identity()
	pair, err := s.issueSession(ident)
	if err != nil {
		return identity.Identity{}, TokenPair{}, err
	}

	return ident, pair, nil
}
