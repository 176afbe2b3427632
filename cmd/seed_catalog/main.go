package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"

	"github.com/pageza/plantissier/backend/config"
	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/database"
)

func main() {
	// Parse command line flags
	datasetPath := flag.String("file", "", "Path to a dataset JSON file (defaults to the embedded dataset)")
	truncate := flag.Bool("truncate", false, "Clear the ingredients table before seeding")
	publish := flag.Bool("publish", false, "Also upload the dataset to the configured S3 object")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Read and validate the dataset before touching the database.
	data := catalog.EmbeddedDataset()
	if *datasetPath != "" {
		data, err = os.ReadFile(*datasetPath)
		if err != nil {
			log.Fatalf("failed to read dataset %s: %v", *datasetPath, err)
		}
	}
	cat, err := catalog.Parse(data)
	if err != nil {
		log.Fatalf("dataset rejected: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := seed(db, cat, *truncate); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Printf("Seeded %d ingredients.\n", cat.Len())

	if *publish {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := config.NewS3Config(ctx, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("failed to initialize S3: %v", err)
		}
		if err := store.PublishDataset(ctx, cfg.CatalogS3Key, data); err != nil {
			log.Fatalf("publish failed: %v", err)
		}
		fmt.Printf("Published dataset to s3://%s/%s\n", cfg.S3Bucket, cfg.CatalogS3Key)
	}
}

// seed bulk-loads the catalog through the COPY protocol, one row per
// ingredient in dataset order.
func seed(db *database.DB, cat *catalog.Catalog, truncate bool) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if truncate {
		if _, err := tx.Exec("TRUNCATE TABLE ingredients"); err != nil {
			return fmt.Errorf("failed to truncate ingredients: %w", err)
		}
	}

	stmt, err := tx.Prepare(pq.CopyIn("ingredients",
		"id", "name", "category", "roles", "properties",
		"sust_co2_kg_per_kg", "sust_water_l_per_kg", "sust_land_m2_per_kg", "sust_source",
		"cost_per_kg_eur", "allergens", "availability",
		"substitutes", "incompatible_with", "unit", "notes", "position",
	))
	if err != nil {
		return fmt.Errorf("failed to prepare COPY: %w", err)
	}

	for i, ing := range cat.GetAll() {
		_, err := stmt.Exec(
			ing.ID, ing.Name, ing.Category, ing.Roles, ing.Properties,
			ing.Sustainability.CO2KgPerKg, ing.Sustainability.WaterLPerKg,
			ing.Sustainability.LandM2PerKg, ing.Sustainability.Source,
			ing.CostPerKgEUR, ing.Allergens, ing.Availability,
			ing.Substitutes, ing.IncompatibleWith, ing.Unit, ing.Notes, i,
		)
		if err != nil {
			return fmt.Errorf("failed to queue ingredient %s: %w", ing.ID, err)
		}
	}

	// Flush the COPY buffer.
	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("failed to flush COPY: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close COPY statement: %w", err)
	}

	return tx.Commit()
}
