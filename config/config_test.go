package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTokenSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")
}

func TestLoadConfig_MissingSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")
}

func TestLoadConfig_MissingRefreshSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET")
}

func TestLoadConfig_IdenticalSecretsRejected(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "same-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "same-secret")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setTokenSecrets(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.App.Environment)
	assert.Equal(t, "8000", config.App.Port)
	assert.Equal(t, 15*time.Minute, config.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, config.JWT.RefreshExpiry)
	assert.Equal(t, 100, config.RateLimit.Request)
	assert.Equal(t, 5432, config.Database.Port)
}

func TestLoadConfig_ExpiryOverrides(t *testing.T) {
	setTokenSecrets(t)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "48h")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, config.JWT.AccessExpiry)
	assert.Equal(t, 48*time.Hour, config.JWT.RefreshExpiry)
}

func TestLoadConfig_MalformedExpiryFallsBack(t *testing.T) {
	setTokenSecrets(t)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "not-a-duration")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, config.JWT.AccessExpiry)
}

func TestRedisAddress(t *testing.T) {
	setTokenSecrets(t)
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", config.RedisAddress())
}
