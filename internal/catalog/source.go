package catalog

import (
	"context"
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/plantissier/backend/config"
)

// Catalog source names accepted in CATALOG_SOURCE.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// LoadFile builds the catalog from a JSON dataset on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return Parse(data)
}

// Load builds the catalog from the source selected in the configuration.
func Load(ctx context.Context, cfg *config.Config) (*Catalog, error) {
	switch cfg.CatalogSource {
	case "", SourceEmbedded:
		return LoadEmbedded()
	case SourceFile:
		return LoadFile(cfg.CatalogPath)
	case SourceS3:
		src, err := NewS3Source(ctx, cfg.S3Bucket, cfg.CatalogS3Key)
		if err != nil {
			return nil, err
		}
		return src.Load(ctx)
	case SourcePostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return LoadPostgres(db)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
