package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetEnv pins the test to the development profile with no inherited
// settings and an empty secrets directory.
func resetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_URL",
		"SERVICE_TOKEN_SECRET", "DATABASE_URL",
		"CATALOG_SOURCE", "CATALOG_PATH", "S3_BUCKET_NAME", "CATALOG_S3_KEY",
		"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_WINDOW_SECONDS", "RATE_LIMIT_MAX_REQUESTS",
		"DEFAULT_VENUE", "BAND_TOLERANCE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	resetEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "plantissier", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, "embedded", cfg.CatalogSource)
	assert.Equal(t, "plantissier-catalog", cfg.S3Bucket)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 60, cfg.RateLimitWindowSec)
	assert.Equal(t, 120, cfg.RateLimitMax)
	assert.Equal(t, "cafe", cfg.DefaultVenue)
	assert.InDelta(t, 0.5, cfg.BandTolerance, 1e-9)
	assert.Empty(t, cfg.ServiceTokenSecret)
	assert.Contains(t, cfg.DatabaseURL, "dbname=plantissier")
}

func TestLoadConfigFromEnv(t *testing.T) {
	resetEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("REDIS_URL", "redis://cache.internal:6379/0")
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://kitchen.example.com, https://ops.example.com")
	t.Setenv("DEFAULT_VENUE", "bakery")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "30")
	t.Setenv("BAND_TOLERANCE", "0.75")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "postgres", cfg.CatalogSource)
	assert.Equal(t, "redis://cache.internal:6379/0", cfg.RedisURL)
	assert.Equal(t, []string{"https://kitchen.example.com", "https://ops.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "bakery", cfg.DefaultVenue)
	assert.Equal(t, 30, cfg.RateLimitMax)
	assert.InDelta(t, 0.75, cfg.BandTolerance, 1e-9)
	assert.Contains(t, cfg.DatabaseURL, "host=db.internal")
	assert.Contains(t, cfg.DatabaseURL, "password=hunter2")
}

func TestLoadConfigDatabaseURLWins(t *testing.T) {
	resetEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/catalog?sslmode=disable")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@db:5432/catalog?sslmode=disable", cfg.DatabaseURL)
}

func TestLoadConfigSecretsOverrideEnv(t *testing.T) {
	resetEnv(t)
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-secret\n"), 0o600))
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "http"}, "SERVER_PORT"},
		{"unknown source", map[string]string{"CATALOG_SOURCE": "mongodb"}, "CATALOG_SOURCE"},
		{"file source without path", map[string]string{"CATALOG_SOURCE": "file"}, "CATALOG_PATH"},
		{"postgres source without password", map[string]string{"CATALOG_SOURCE": "postgres"}, "DB_PASSWORD"},
		{"unknown venue", map[string]string{"DEFAULT_VENUE": "foodtruck"}, "DEFAULT_VENUE"},
		{"zero rate window", map[string]string{"RATE_LIMIT_WINDOW_SECONDS": "0"}, "RATE_LIMIT_WINDOW_SECONDS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadConfigProduction(t *testing.T) {
	resetEnv(t)
	secretsDir := t.TempDir()
	for name, value := range map[string]string{
		"db_user":              "plantissier",
		"db_password":          "prod-pw",
		"redis_password":       "cache-pw",
		"redis_url":            "redis://cache:6379",
		"service_token_secret": "signing-key",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, name), []byte(value), 0o600))
	}
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "plantissier", cfg.DBUser)
	assert.Equal(t, "prod-pw", cfg.DBPassword)
	assert.Equal(t, "signing-key", cfg.ServiceTokenSecret)
	assert.Equal(t, "require", cfg.DBSSLMode)
}

func TestLoadConfigProductionRequiresTokenSecret(t *testing.T) {
	resetEnv(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_token_secret")
}

func TestEnvironmentDetection(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "development")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
	assert.True(t, IsCI())
}
