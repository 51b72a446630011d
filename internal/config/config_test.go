package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20.0, cfg.Server.RateLimit)
	assert.Equal(t, DefaultDatasetURL, cfg.Dataset.URL)
	assert.Equal(t, time.Minute, cfg.Dataset.FetchTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SALARYDASH_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("SALARYDASH_SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("SALARYDASH_SERVER_RATE_LIMIT", "0")
	t.Setenv("SALARYDASH_DATASET_URL", "/data/salaries.csv")
	t.Setenv("SALARYDASH_DATASET_FETCH_TIMEOUT", "5s")
	t.Setenv("SALARYDASH_LOGGING_LEVEL", "debug")
	t.Setenv("SALARYDASH_LOGGING_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, "/data/salaries.csv", cfg.Dataset.URL)
	assert.Equal(t, 5*time.Second, cfg.Dataset.FetchTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		t.Setenv("SALARYDASH_LOGGING_LEVEL", "verbose")
		_, err := Load()
		assert.ErrorContains(t, err, "validation failed")
	})

	t.Run("negative rate limit", func(t *testing.T) {
		t.Setenv("SALARYDASH_SERVER_RATE_LIMIT", "-1")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("SALARYDASH_DATASET_FETCH_TIMEOUT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "failed to load config from env")
	})
}
