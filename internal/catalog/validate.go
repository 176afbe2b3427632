package catalog

import (
	"fmt"

	"github.com/pageza/plantissier/backend/internal/model"
)

// DataIntegrityError reports a malformed catalog record. Loading aborts on
// the first one found, so a bad dataset never reaches the matcher.
type DataIntegrityError struct {
	IngredientID string
	Field        string
	Reason       string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("ingredient %q: invalid %s: %s", e.IngredientID, e.Field, e.Reason)
}

var knownCategories = map[model.Category]bool{
	model.CategoryFat:        true,
	model.CategoryProtein:    true,
	model.CategoryEmulsifier: true,
	model.CategorySweetener:  true,
	model.CategoryFlour:      true,
	model.CategoryLiquid:     true,
	model.CategoryLeavening:  true,
	model.CategoryStabilizer: true,
	model.CategoryFlavoring:  true,
}

var knownRoles = map[model.Role]bool{
	model.RoleFatStructuring:    true,
	model.RoleEmulsification:    true,
	model.RoleFoaming:           true,
	model.RoleBinding:           true,
	model.RoleBrowning:          true,
	model.RoleSweetening:        true,
	model.RoleThickening:        true,
	model.RoleMoistureRetention: true,
	model.RoleFlavorCarrier:     true,
	model.RoleCrystallization:   true,
}

var knownAvailability = map[model.Availability]bool{
	model.AvailabilityCommon:    true,
	model.AvailabilitySpecialty: true,
	model.AvailabilityRare:      true,
}

// propBounds is both the set of accepted property keys and their value
// ranges. A key outside this table is treated as a typo.
var propBounds = map[string][2]float64{
	model.PropMeltingPoint: {-100, 300},
	model.PropProtein:      {0, 100},
	model.PropFat:          {0, 100},
	model.PropWater:        {0, 100},
	model.PropPH:           {0, 14},
	model.PropViscosity:    {0, 1e9},
	model.PropEmulsifying:  {0, 1},
	model.PropFoaming:      {0, 1},
}

func validate(ingredients []model.Ingredient) error {
	ids := make(map[string]bool, len(ingredients))
	for i := range ingredients {
		ids[ingredients[i].ID] = true
	}

	seen := make(map[string]bool, len(ingredients))
	for i := range ingredients {
		ing := &ingredients[i]
		if ing.ID == "" {
			return &DataIntegrityError{IngredientID: fmt.Sprintf("record %d", i), Field: "id", Reason: "empty"}
		}
		if seen[ing.ID] {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "id", Reason: "duplicate"}
		}
		seen[ing.ID] = true

		if ing.Name == "" {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "name", Reason: "empty"}
		}
		if !knownCategories[ing.Category] {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "category", Reason: fmt.Sprintf("unknown category %q", ing.Category)}
		}
		if len(ing.Roles) == 0 {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "functional_roles", Reason: "empty"}
		}
		for _, r := range ing.Roles {
			if !knownRoles[model.Role(r)] {
				return &DataIntegrityError{IngredientID: ing.ID, Field: "functional_roles", Reason: fmt.Sprintf("unknown role %q", r)}
			}
		}
		if !knownAvailability[ing.Availability] {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "availability", Reason: fmt.Sprintf("unknown availability %q", ing.Availability)}
		}
		if _, ok := model.UnitToKilograms[ing.Unit]; !ok {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "unit", Reason: fmt.Sprintf("unknown unit %q", ing.Unit)}
		}
		if ing.CostPerKgEUR <= 0 {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "cost_per_kg_eur", Reason: "must be positive"}
		}
		if ing.Sustainability.CO2KgPerKg < 0 {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "co2_kg_per_kg", Reason: "negative"}
		}
		if ing.Sustainability.WaterLPerKg < 0 {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "water_liters_per_kg", Reason: "negative"}
		}
		if ing.Sustainability.LandM2PerKg < 0 {
			return &DataIntegrityError{IngredientID: ing.ID, Field: "land_m2_per_kg", Reason: "negative"}
		}
		for key, value := range ing.Properties {
			bounds, ok := propBounds[key]
			if !ok {
				return &DataIntegrityError{IngredientID: ing.ID, Field: "properties", Reason: fmt.Sprintf("unknown property %q", key)}
			}
			if value < bounds[0] || value > bounds[1] {
				return &DataIntegrityError{IngredientID: ing.ID, Field: key, Reason: fmt.Sprintf("value %g outside [%g, %g]", value, bounds[0], bounds[1])}
			}
		}
		for _, sub := range ing.Substitutes {
			if sub == ing.ID {
				return &DataIntegrityError{IngredientID: ing.ID, Field: "substitutes", Reason: "references itself"}
			}
			if !ids[sub] {
				return &DataIntegrityError{IngredientID: ing.ID, Field: "substitutes", Reason: fmt.Sprintf("unknown ingredient %q", sub)}
			}
		}
		for _, inc := range ing.IncompatibleWith {
			if inc == ing.ID {
				return &DataIntegrityError{IngredientID: ing.ID, Field: "incompatible_with", Reason: "references itself"}
			}
			if !ids[inc] {
				return &DataIntegrityError{IngredientID: ing.ID, Field: "incompatible_with", Reason: fmt.Sprintf("unknown ingredient %q", inc)}
			}
		}
	}
	return nil
}
