package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "APP_ENV", "SERVER_SHUTDOWN_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"DATABASE_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"CACHE_TTL_SECONDS", "AUTH_JWT_SECRET", "JSEARCH_API_KEY", "JSEARCH_BASE_URL",
		"INGEST_QUERIES", "INGEST_PAGES", "INGEST_SCHEDULE", "JSEARCH_TIMEOUT",
		"INGEST_RATE_LIMIT", "ENCRYPTION_KEY", "RUN_MIGRATIONS", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"software engineer", "data scientist"}, cfg.Ingest.Queries)
	assert.Equal(t, 1, cfg.Ingest.Pages)
	assert.Empty(t, cfg.Ingest.Schedule)
	assert.Equal(t, 5, cfg.Ingest.RateLimit)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("INGEST_QUERIES", "golang,rust")
	t.Setenv("INGEST_SCHEDULE", "@every 6h")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6380", cfg.Redis.Address())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, []string{"golang", "rust"}, cfg.Ingest.Queries)
	assert.Equal(t, "@every 6h", cfg.Ingest.Schedule)
	assert.False(t, cfg.RunMigrations)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_TTL_SECONDS", "soon")
	t.Setenv("REDIS_DB", "x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", "s")
	_, err = Load()
	assert.Error(t, err, "encryption key is still missing")

	t.Setenv("ENCRYPTION_KEY", "k")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
