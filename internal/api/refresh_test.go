package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledsAlshibani/portal-auth/internal/api"
	"github.com/khaledsAlshibani/portal-auth/internal/testutil"
	"github.com/khaledsAlshibani/portal-auth/internal/token"
)

func TestRefreshEndpoint_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")
	refresh := env.IssueTestRefresh(t, ident)

	var res api.SessionResponse
	result := testutil.PostJSON(env.Router, "/api/auth/refresh", "", &res,
		&http.Cookie{Name: api.RefreshCookieName, Value: refresh.Value})
	testutil.ExpectStatus(t, http.StatusOK, result)

	assert.Equal(t, ident, res.Identity)

	// only the access cookie is replaced; the refresh token is not rotated
	access := result.CookieByName(api.AccessCookieName)
	require.NotNil(t, access)
	assert.Nil(t, result.CookieByName(api.RefreshCookieName))

	claims, err := env.Verifier.Verify(access.Value)
	require.NoError(t, err)
	assert.Equal(t, token.TypeAccess, claims.Type)
}

func TestRefreshEndpoint_MissingCookie(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	var res api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/api/auth/refresh", "", &res)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
	assert.Equal(t, api.CodeRefreshTokenMissing, res.Code)
}

func TestRefreshEndpoint_AccessTokenRejected(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")
	access := env.IssueTestAccess(t, ident)

	var res api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/api/auth/refresh", "", &res,
		&http.Cookie{Name: api.RefreshCookieName, Value: access.Value})
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
	assert.Equal(t, api.CodeInvalidRefreshToken, res.Code)
}

func TestRefreshEndpoint_ExpiredToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")

	env.Issuer.WithClock(func() time.Time {
		return time.Now().Add(-testutil.RefreshTTL - time.Minute)
	})
	expired := env.IssueTestRefresh(t, ident)

	var res api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/api/auth/refresh", "", &res,
		&http.Cookie{Name: api.RefreshCookieName, Value: expired.Value})
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
	assert.Equal(t, api.CodeInvalidRefreshToken, res.Code)
}

func TestRefreshEndpoint_TamperedToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ident := env.RegisterTestUser(t, "alice", "password123")
	refresh := env.IssueTestRefresh(t, ident)

	tampered := refresh.Value + "x"

	var res api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/api/auth/refresh", "", &res,
		&http.Cookie{Name: api.RefreshCookieName, Value: tampered})
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
	assert.Equal(t, api.CodeInvalidRefreshToken, res.Code)
}
