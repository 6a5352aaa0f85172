package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/service"
	"github.com/khaledsAlshibani/portal-auth/internal/testutil"
	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.RegisterTestUser(t, "alice", "password123")

	ident, pair, err := env.Service.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	assert.Equal(t, "alice", ident.Username)
	assert.Equal(t, identity.RoleUser, ident.Role)
	assert.NotEmpty(t, ident.ID)

	// both tokens verify and carry the right types
	access, err := env.Verifier.Verify(pair.Access.Value)
	require.NoError(t, err)
	assert.Equal(t, token.TypeAccess, access.Type)
	assert.Equal(t, ident, access.Identity())

	refresh, err := env.Verifier.Verify(pair.Refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, token.TypeRefresh, refresh.Type)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.RegisterTestUser(t, "alice", "password123")

	_, _, err := env.Service.Login(context.Background(), "alice", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	// unknown user fails with the same error as a wrong password
	_, _, err := env.Service.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	ident, pair, err := env.Service.Register(context.Background(), service.NewAccount{
		Username: "bob",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, ident.Role)
	assert.NotEmpty(t, pair.Access.Value)
	assert.NotEmpty(t, pair.Refresh.Value)
}

func TestRegister_AdminForbidden(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	_, pair, err := env.Service.Register(context.Background(), service.NewAccount{
		Username: "mallory",
		Password: "password123",
		Role:     identity.RoleAdmin,
	})
	assert.ErrorIs(t, err, service.ErrAdminRegistration)
	assert.Empty(t, pair.Access.Value)

	// nothing was written: the username is still free
	_, _, err = env.Service.Register(context.Background(), service.NewAccount{
		Username: "mallory",
		Password: "password123",
	})
	assert.NoError(t, err)
}

func TestRegister_UnknownRole(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	_, _, err := env.Service.Register(context.Background(), service.NewAccount{
		Username: "carol",
		Password: "password123",
		Role:     identity.Role("superuser"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidRole)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.RegisterTestUser(t, "alice", "password123")

	_, _, err := env.Service.Register(context.Background(), service.NewAccount{
		Username: "alice",
		Password: "otherpassword",
	})
	assert.ErrorIs(t, err, service.ErrUsernameExists)
}

func TestRefresh_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")
	refresh := env.IssueTestRefresh(t, ident)

	got, access, err := env.Service.Refresh(context.Background(), refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, ident, got)

	claims, err := env.Verifier.Verify(access.Value)
	require.NoError(t, err)
	assert.Equal(t, token.TypeAccess, claims.Type)
	assert.Equal(t, ident.ID, claims.UserID)
}

func TestRefresh_ReflectsRoleChange(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")
	refresh := env.IssueTestRefresh(t, ident)

	// promote after the refresh token was issued
	require.NoError(t, env.DB.UpdateRole(context.Background(), ident.ID, identity.RoleAdmin))

	got, access, err := env.Service.Refresh(context.Background(), refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, got.Role)

	claims, err := env.Verifier.Verify(access.Value)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, claims.Role)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")
	access := env.IssueTestAccess(t, ident)

	// an access token must never be accepted by the refresh operation
	_, _, err := env.Service.Refresh(context.Background(), access.Value)
	assert.ErrorIs(t, err, service.ErrRefreshInvalid)
}

func TestRefresh_RejectsExpiredToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")

	env.Issuer.WithClock(func() time.Time {
		return time.Now().Add(-testutil.RefreshTTL - time.Minute)
	})
	expired := env.IssueTestRefresh(t, ident)

	_, _, err := env.Service.Refresh(context.Background(), expired.Value)
	assert.ErrorIs(t, err, service.ErrRefreshInvalid)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	_, _, err := env.Service.Refresh(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, service.ErrRefreshInvalid)
}

func TestRefresh_UnknownSubject(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	// validly signed refresh token for an account that doesn't exist
	ghost := identity.Identity{ID: "00000000-0000-0000-0000-000000000000", Username: "ghost", Role: identity.RoleUser}
	refresh := env.IssueTestRefresh(t, ghost)

	_, _, err := env.Service.Refresh(context.Background(), refresh.Value)
	assert.ErrorIs(t, err, service.ErrRefreshInvalid)
}
