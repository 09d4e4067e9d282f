package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "pulss", cfg.Database.Database)

	assert.Equal(t, 300*time.Millisecond, cfg.Search.DebounceDelay)
	assert.Equal(t, 2*time.Second, cfg.Search.IntentTimeout)
	assert.Equal(t, 10, cfg.Search.HistoryLimit)
	assert.Equal(t, 5, cfg.Search.HistorySuggestions)
	assert.Equal(t, 5, cfg.Search.TrendingSuggestions)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 60, cfg.OpenAI.RateLimitRPM)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("SEARCH_DEBOUNCE_MS", "150")
	t.Setenv("SEARCH_INTENT_TIMEOUT_MS", "500")
	t.Setenv("SEARCH_HISTORY_LIMIT", "20")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.DebounceDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.IntentTimeout)
	assert.Equal(t, 20, cfg.Search.HistoryLimit)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", Database: "pulss", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=pulss sslmode=disable",
		cfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := &RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}
