package testhelpers

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/database"
	"github.com/pageza/plantissier/backend/internal/model"
)

// SetupLightDB opens an in-memory SQLite database with the ingredients
// schema. It covers loader and query logic without needing docker; schema
// fidelity against the real DDL is SetupTestDatabase's job.
func SetupLightDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")
	require.NoError(t, database.AutoMigrate(db), "failed to migrate in-memory database")
	return db
}

// SeedCatalog inserts the embedded ingredient dataset into the database,
// preserving dataset order through the position column. It returns the
// seeded records.
func SeedCatalog(t *testing.T, db *gorm.DB) []model.Ingredient {
	t.Helper()

	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err, "failed to load embedded catalog")

	records := cat.GetAll()
	ingredients := make([]model.Ingredient, len(records))
	for i, ing := range records {
		ingredients[i] = *ing
		ingredients[i].Position = i
	}

	require.NoError(t, db.CreateInBatches(ingredients, 50).Error, "failed to seed ingredients")
	return ingredients
}

// RandomIngredient generates a catalog-valid ingredient with randomized
// category, roles, properties and footprint. Substitute and incompatibility
// lists stay empty so single records validate without cross-references.
func RandomIngredient(f *gofakeit.Faker, id string) model.Ingredient {
	categories := []string{
		string(model.CategoryFat),
		string(model.CategoryProtein),
		string(model.CategoryEmulsifier),
		string(model.CategorySweetener),
		string(model.CategoryFlour),
		string(model.CategoryLiquid),
		string(model.CategoryLeavening),
		string(model.CategoryStabilizer),
		string(model.CategoryFlavoring),
	}
	roles := []string{
		string(model.RoleFatStructuring),
		string(model.RoleEmulsification),
		string(model.RoleFoaming),
		string(model.RoleBinding),
		string(model.RoleBrowning),
		string(model.RoleSweetening),
		string(model.RoleThickening),
		string(model.RoleMoistureRetention),
		string(model.RoleFlavorCarrier),
		string(model.RoleCrystallization),
	}
	f.ShuffleStrings(roles)

	return model.Ingredient{
		ID:       id,
		Name:     f.Fruit(),
		Category: model.Category(f.RandomString(categories)),
		Roles:    append(model.JSONBStringArray{}, roles[:f.IntRange(1, 3)]...),
		Properties: model.Properties{
			model.PropFat:     f.Float64Range(0, 100),
			model.PropProtein: f.Float64Range(0, 100),
			model.PropWater:   f.Float64Range(0, 100),
		},
		Sustainability: model.Sustainability{
			CO2KgPerKg:  f.Float64Range(0.05, 15),
			WaterLPerKg: f.Float64Range(10, 5000),
			LandM2PerKg: f.Float64Range(0.05, 30),
			Source:      "generated",
		},
		CostPerKgEUR:     f.Float64Range(0.5, 60),
		Allergens:        model.JSONBStringArray{},
		Availability:     model.Availability(f.RandomString([]string{"common", "specialty", "rare"})),
		Substitutes:      model.JSONBStringArray{},
		IncompatibleWith: model.JSONBStringArray{},
		Unit:             model.UnitGram,
	}
}
