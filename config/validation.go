package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validCatalogSources = map[string]bool{
	"":         true,
	"embedded": true,
	"file":     true,
	"s3":       true,
	"postgres": true,
}

var validVenues = map[string]bool{
	"cafe":       true,
	"restaurant": true,
	"canteen":    true,
	"bakery":     true,
}

// ValidateConfig checks that the configuration is internally consistent.
// Catalog sources pull in their own requirements: a postgres catalog needs
// database credentials, an s3 catalog needs a bucket and key, a file catalog
// needs a path.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("not a port number: %q", cfg.ServerPort)}.Error())
	}
	if !validCatalogSources[cfg.CatalogSource] {
		errors = append(errors, ValidationError{Field: "CATALOG_SOURCE", Message: fmt.Sprintf("unknown source %q (embedded, file, s3, postgres)", cfg.CatalogSource)}.Error())
	}
	switch cfg.CatalogSource {
	case "file":
		if cfg.CatalogPath == "" {
			errors = append(errors, ValidationError{Field: "CATALOG_PATH", Message: "required when CATALOG_SOURCE is file"}.Error())
		}
	case "s3":
		if cfg.S3Bucket == "" {
			errors = append(errors, ValidationError{Field: "S3_BUCKET_NAME", Message: "required when CATALOG_SOURCE is s3"}.Error())
		}
		if cfg.CatalogS3Key == "" {
			errors = append(errors, ValidationError{Field: "CATALOG_S3_KEY", Message: "required when CATALOG_SOURCE is s3"}.Error())
		}
	case "postgres":
		if cfg.DBPassword == "" {
			errors = append(errors, ValidationError{Field: "DB_PASSWORD", Message: "required when CATALOG_SOURCE is postgres"}.Error())
		}
		if cfg.DBName == "" {
			errors = append(errors, ValidationError{Field: "DB_NAME", Message: "required when CATALOG_SOURCE is postgres"}.Error())
		}
	}
	if !validVenues[cfg.DefaultVenue] {
		errors = append(errors, ValidationError{Field: "DEFAULT_VENUE", Message: fmt.Sprintf("unknown venue %q", cfg.DefaultVenue)}.Error())
	}
	if cfg.RateLimitWindowSec <= 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_WINDOW_SECONDS", Message: "must be positive"}.Error())
	}
	if cfg.RateLimitMax <= 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_MAX_REQUESTS", Message: "must be positive"}.Error())
	}
	if cfg.BandTolerance < 0 {
		errors = append(errors, ValidationError{Field: "BAND_TOLERANCE", Message: "must not be negative"}.Error())
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		errors = append(errors, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: "must not be empty"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}
