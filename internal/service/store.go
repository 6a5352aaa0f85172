package service

import (
	"context"
	"time"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
)

// Account is a stored account record. Only Identity() projections ever leave
// the service layer; the password hash stays behind it.
type Account struct {
	ID           string
	Username     string
	PasswordHash []byte
	Role         identity.Role
	CreatedAt    time.Time
}

// Identity returns the public-safe projection of the account.
func (a *Account) Identity() identity.Identity {
	return identity.Identity{
		ID:       a.ID,
		Username: a.Username,
		Role:     a.Role,
	}
}

// AccountStore handles persistence of account records.
//
// Insert must be definitive about duplicate usernames: it returns
// ErrUsernameExists when the username is taken, relying on the store's own
// uniqueness constraint to pick a single winner under concurrent
// registration. Lookups return ErrAccountNotFound for missing rows.
type AccountStore interface {
	Insert(ctx context.Context, account Account) error
	GetByUsername(ctx context.Context, username string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	UpdateRole(ctx context.Context, id string, role identity.Role) error
}
