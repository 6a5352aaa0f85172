// Package database provides SQLite persistence for account records.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore wraps the account database. Use ":memory:" as the path for an
// isolated in-memory database in tests.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id          TEXT PRIMARY KEY,
			username    TEXT NOT NULL UNIQUE,
			password    BLOB NOT NULL,
			role        TEXT NOT NULL,
			created_at  INTEGER NOT NULL
		);`,
	); err != nil {
		return fmt.Errorf("init 'accounts' table schema: %w", err)
	}
	return nil
}
