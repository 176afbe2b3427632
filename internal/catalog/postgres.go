package catalog

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/plantissier/backend/internal/model"
)

// LoadPostgres reads the catalog from the ingredients table in seeded
// position order. The table is created and populated by cmd/seed_catalog.
func LoadPostgres(db *gorm.DB) (*Catalog, error) {
	var ingredients []model.Ingredient
	if err := db.Order("position").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredients from database: %w", err)
	}
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("ingredients table is empty; run seed_catalog first")
	}
	return New(ingredients)
}
