package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/service"
)

// AccountStore returns the store as the interface the service layer
// depends on.
func (s *SQLiteStore) AccountStore() service.AccountStore {
	return s
}

// Insert stores a new account. The UNIQUE constraint on username picks a
// single winner under concurrent registration; the loser gets
// service.ErrUsernameExists.
func (s *SQLiteStore) Insert(ctx context.Context, account service.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password, role, created_at)
		VALUES (?, ?, ?, ?, ?);`,
		account.ID,
		account.Username,
		account.PasswordHash,
		string(account.Role),
		account.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return service.ErrUsernameExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (service.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, role, created_at
		FROM accounts
		WHERE username=?;`,
		username,
	)
	return scanAccount(row)
}

func (s *SQLiteStore) GetByID(ctx context.Context, id string) (service.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, role, created_at
		FROM accounts
		WHERE id=?;`,
		id,
	)
	return scanAccount(row)
}

// UpdateRole changes an account's role. Outstanding tokens keep the old
// role until the next refresh re-reads the account.
func (s *SQLiteStore) UpdateRole(ctx context.Context, id string, role identity.Role) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET role=?
		WHERE id=?;`,
		string(role),
		id,
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if count, err := result.RowsAffected(); err == nil && count == 0 {
		return service.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (service.Account, error) {
	var (
		account   service.Account
		role      string
		createdAt int64
	)
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return service.Account{}, service.ErrAccountNotFound
		}
		return service.Account{}, fmt.Errorf("scan account: %w", err)
	}
	account.Role = identity.Role(role)
	account.CreatedAt = time.Unix(createdAt, 0).UTC()
	return account, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
