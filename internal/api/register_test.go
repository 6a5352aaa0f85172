package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledsAlshibani/portal-auth/internal/api"
	"github.com/khaledsAlshibani/portal-auth/internal/identity"
	"github.com/khaledsAlshibani/portal-auth/internal/testutil"
)

func TestRegisterEndpoint_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	var res api.SessionResponse
	result := testutil.PostJSON(env.Router, "/api/auth/register",
		`{"username":"bob","password":"hunter22hunter22"}`, &res)
	testutil.ExpectStatus(t, http.StatusOK, result)

	assert.Equal(t, "bob", res.Identity.Username)
	assert.Equal(t, identity.RoleUser, res.Identity.Role)

	// registration implicitly authenticates: same cookie pair as login
	require.NotNil(t, result.CookieByName(api.AccessCookieName))
	require.NotNil(t, result.CookieByName(api.RefreshCookieName))
}

func TestRegisterEndpoint_AdminForbidden(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	var res api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/api/auth/register",
		`{"username":"mallory","password":"password123","role":"admin"}`, &res)
	testutil.ExpectStatus(t, http.StatusForbidden, result)

	assert.Equal(t, api.CodeAdminForbidden, res.Code)
	// no tokens issued on a privilege-escalation attempt
	assert.Empty(t, result.Cookies)
}

func TestRegisterEndpoint_DuplicateUsername(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.RegisterTestUser(t, "alice", "password123")

	var res api.ErrorResponse
	result := testutil.PostJSON(env.Router, "/api/auth/register",
		`{"username":"alice","password":"otherpassword"}`, &res)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
	assert.Equal(t, api.CodeUsernameExists, res.Code)
}

func TestRegisterEndpoint_UnknownRole(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/auth/register",
		`{"username":"carol","password":"password123","role":"superuser"}`, nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
}
