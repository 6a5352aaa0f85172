package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledsAlshibani/portal-auth/internal/config"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.LocalDev())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_PATH", "")
	os.Unsetenv("JWT_SECRET")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoad_FileWithEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
env: prod
http:
  port: "9090"
auth:
  jwt_secret: file-secret
  access_token_ttl: 5m
db:
  path: /tmp/auth-test.db
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("HTTP_PORT", "7070")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	// env overrides file, file overrides defaults
	assert.Equal(t, "7070", cfg.HTTP.Port)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "prod", cfg.Env)
	assert.False(t, cfg.LocalDev())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
