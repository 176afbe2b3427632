package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration, used when the catalog source is postgres
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis configuration, used for response caching and rate limiting
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// ServiceTokenSecret signs service-to-service tokens. Auth is disabled
	// when it is empty.
	ServiceTokenSecret string

	// Catalog source selection
	CatalogSource string
	CatalogPath   string
	S3Bucket      string
	CatalogS3Key  string

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitWindowSec int
	RateLimitMax       int

	// Formulation defaults
	DefaultVenue  string
	BandTolerance float64
}

// LoadConfig creates a new Config instance with values from environment
// variables or secrets, depending on the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	loadSharedConfig(cfg)

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDatabaseURL(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadCIConfig loads configuration for CI using only environment variables.
// Sensitive values come from TEST_-prefixed GitHub Actions secrets.
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = envOrDefault("SERVER_PORT", "8080")
	cfg.ServerHost = envOrDefault("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = envOrDefault("DB_HOST", "localhost")
	cfg.DBPort = envOrDefault("DB_PORT", "5432")
	cfg.DBUser = envOrDefault("DB_USER", "postgres")
	cfg.DBName = envOrDefault("DB_NAME", "plantissier")
	cfg.DBSSLMode = envOrDefault("DB_SSL_MODE", "disable")
	cfg.RedisHost = envOrDefault("REDIS_HOST", "localhost")
	cfg.RedisPort = envOrDefault("REDIS_PORT", "6379")
	cfg.RedisDB = 0

	cfg.DBPassword = firstEnv("TEST_DB_PASSWORD", "DB_PASSWORD")
	cfg.ServiceTokenSecret = firstEnv("TEST_SERVICE_TOKEN_SECRET", "SERVICE_TOKEN_SECRET")
	cfg.RedisPassword = firstEnv("TEST_REDIS_PASSWORD", "REDIS_PASSWORD")
	cfg.RedisURL = firstEnv("TEST_REDIS_URL", "REDIS_URL")
}

// loadDevConfig loads configuration for development and test. A Docker
// secret wins when present, then the environment variable, then the default.
// The service runs with no external dependencies out of the box: embedded
// catalog, no database, no redis.
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = secretEnvOrDefault("server_port", "SERVER_PORT", "8080")
	cfg.ServerHost = secretEnvOrDefault("server_host", "SERVER_HOST", "0.0.0.0")
	cfg.DBHost = secretEnvOrDefault("db_host", "DB_HOST", "localhost")
	cfg.DBPort = secretEnvOrDefault("db_port", "DB_PORT", "5432")
	cfg.DBUser = secretEnvOrDefault("db_user", "DB_USER", "postgres")
	cfg.DBPassword = secretEnvOrDefault("db_password", "DB_PASSWORD", "")
	cfg.DBName = secretEnvOrDefault("db_name", "DB_NAME", "plantissier")
	cfg.DBSSLMode = secretEnvOrDefault("db_ssl_mode", "DB_SSL_MODE", "disable")
	cfg.RedisHost = secretEnvOrDefault("redis_host", "REDIS_HOST", "localhost")
	cfg.RedisPort = secretEnvOrDefault("redis_port", "REDIS_PORT", "6379")
	cfg.RedisPassword = secretEnvOrDefault("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = secretEnvOrDefault("redis_url", "REDIS_URL", "")
	cfg.RedisDB = 0
	cfg.ServiceTokenSecret = secretEnvOrDefault("service_token_secret", "SERVICE_TOKEN_SECRET", "")
}

// loadProdConfig loads configuration for production using ONLY Docker secrets
// for sensitive values. Non-sensitive settings still come from the
// environment.
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = envOrDefault("SERVER_PORT", "8080")
	cfg.ServerHost = envOrDefault("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = envOrDefault("DB_HOST", "localhost")
	cfg.DBPort = envOrDefault("DB_PORT", "5432")
	cfg.DBName = envOrDefault("DB_NAME", "plantissier")
	cfg.DBSSLMode = envOrDefault("DB_SSL_MODE", "require")
	cfg.RedisHost = envOrDefault("REDIS_HOST", "localhost")
	cfg.RedisPort = envOrDefault("REDIS_PORT", "6379")
	cfg.RedisDB = 0

	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")
	cfg.ServiceTokenSecret = readSecret("service_token_secret")
	if cfg.ServiceTokenSecret == "" {
		return fmt.Errorf("service_token_secret secret is required in production")
	}
	return nil
}

// loadSharedConfig loads the settings that are plain environment variables
// in every environment.
func loadSharedConfig(cfg *Config) {
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.CatalogSource = envOrDefault("CATALOG_SOURCE", "embedded")
	cfg.CatalogPath = os.Getenv("CATALOG_PATH")
	cfg.S3Bucket = envOrDefault("S3_BUCKET_NAME", "plantissier-catalog")
	cfg.CatalogS3Key = envOrDefault("CATALOG_S3_KEY", "datasets/ingredients.json")
	cfg.CORSAllowedOrigins = splitOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "*"))
	cfg.RateLimitWindowSec = envOrDefaultInt("RATE_LIMIT_WINDOW_SECONDS", 60)
	cfg.RateLimitMax = envOrDefaultInt("RATE_LIMIT_MAX_REQUESTS", 120)
	cfg.DefaultVenue = envOrDefault("DEFAULT_VENUE", "cafe")
	cfg.BandTolerance = envOrDefaultFloat("BAND_TOLERANCE", 0.5)
}

func buildDatabaseURL(cfg *Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretEnvOrDefault(secret, envKey, def string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return envOrDefault(envKey, def)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
