// Package testutil provides test environment setup and utilities for
// internal package tests.
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/khaledsAlshibani/portal-auth/internal/api"
	"github.com/khaledsAlshibani/portal-auth/internal/database"
	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/service"
	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

// Default token lifetimes used by test environments.
const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 30 * 24 * time.Hour
)

// TestEnv provides all dependencies needed for testing.
type TestEnv struct {
	DB        *database.SQLiteStore
	Service   *service.Service
	API       *api.API
	Router    http.Handler
	Codec     *token.Codec
	Issuer    *token.Issuer
	Verifier  *token.Verifier
	Transport *api.CookieTransport
}

// SetupTestEnv creates an isolated test environment: in-memory SQLite and a
// signing secret unique to the test, so tokens from one test can never
// verify in another.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	db, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	codec := token.NewCodec([]byte("test-secret-" + uuid.NewString()))
	issuer := token.NewIssuer(codec, AccessTTL, RefreshTTL)
	verifier := token.NewVerifier(codec)

	svc := service.New(db.AccountStore(), issuer, verifier, service.PasswordModeTesting)

	transport := api.NewCookieTransport(true)
	a := api.New(svc, transport, zerolog.Nop())

	return &TestEnv{
		DB:        db,
		Service:   svc,
		API:       a,
		Router:    a.Router(),
		Codec:     codec,
		Issuer:    issuer,
		Verifier:  verifier,
		Transport: transport,
	}
}

// RegisterTestUser creates a test account and returns its identity.
func (env *TestEnv) RegisterTestUser(t *testing.T, username, password string) identity.Identity {
	t.Helper()
	ident, _, err := env.Service.Register(context.Background(), service.NewAccount{
		Username: username,
		Password: password,
	})
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return ident
}

// IssueTestAccess mints an access token for the given identity.
func (env *TestEnv) IssueTestAccess(t *testing.T, ident identity.Identity) token.Token {
	t.Helper()
	tk, err := env.Issuer.IssueAccess(ident)
	if err != nil {
		t.Fatalf("failed to issue test access token: %v", err)
	}
	return tk
}

// IssueTestRefresh mints a refresh token for the given identity.
func (env *TestEnv) IssueTestRefresh(t *testing.T, ident identity.Identity) token.Token {
	t.Helper()
	tk, err := env.Issuer.IssueRefresh(ident)
	if err != nil {
		t.Fatalf("failed to issue test refresh token: %v", err)
	}
	return tk
}
