package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDevEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDevelopment)
	t.Setenv("DEV_AUTH_SECRET", "local-dev-secret")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	t.Setenv("COOKIE_DOMAIN", "")
}

func TestLoad_Defaults(t *testing.T) {
	setDevEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 14*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
}

func TestLoad_Overrides(t *testing.T) {
	setDevEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "72h")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
}

func TestLoad_InvalidPort(t *testing.T) {
	setDevEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	setDevEnv(t)
	t.Setenv("SESSION_TTL", "fortnight")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidEnv(t *testing.T) {
	setDevEnv(t)
	t.Setenv("APP_ENV", "staging")

	_, err := Load()
	assert.ErrorContains(t, err, "APP_ENV")
}

func TestLoad_DevelopmentRequiresVerifierConfig(t *testing.T) {
	setDevEnv(t)
	t.Setenv("DEV_AUTH_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("GOOGLE_CLIENT_ID", "client-id.apps.googleusercontent.com")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_ProductionRequirements(t *testing.T) {
	setDevEnv(t)
	t.Setenv("APP_ENV", EnvProduction)

	_, err := Load()
	assert.ErrorContains(t, err, "GOOGLE_CLIENT_ID")

	t.Setenv("GOOGLE_CLIENT_ID", "client-id.apps.googleusercontent.com")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	_, err = Load()
	assert.ErrorContains(t, err, "COOKIE_DOMAIN")

	t.Setenv("COOKIE_DOMAIN", "litoral.example.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
