package api

import (
	"github.com/pageza/plantissier/backend/internal/model"
	"github.com/pageza/plantissier/backend/internal/service"
)

// IngredientSummary is the list-view projection of a catalog ingredient.
type IngredientSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Roles        []string `json:"functional_roles"`
	CO2KgPerKg   float64  `json:"co2_kg_per_kg"`
	CostPerKgEUR float64  `json:"cost_per_kg_eur"`
	Allergens    []string `json:"allergens"`
	Availability string   `json:"availability"`
}

// IngredientDetail is the full catalog record plus resolved substitutes.
type IngredientDetail struct {
	model.Ingredient
	SubstituteDetails []IngredientSummary `json:"substitute_details"`
}

// DessertSummary is the list-view projection of a dessert template.
type DessertSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Difficulty      string `json:"difficulty"`
	ComplexityScore int    `json:"complexity_score"`
	Components      int    `json:"components"`
	TypicalYield    int    `json:"typical_yield"`
	TotalTimeMin    int    `json:"total_time_minutes"`
}

// ComponentDetail describes one structural element of a dessert without
// exposing the part-level selection internals.
type ComponentDetail struct {
	Name           string   `json:"name"`
	WeightFraction float64  `json:"weight_fraction"`
	RequiredRoles  []string `json:"required_roles"`
	TextureTargets []string `json:"texture_targets,omitempty"`
	Parts          int      `json:"parts"`
	Steps          int      `json:"steps"`
}

// DessertDetail is the template detail view.
type DessertDetail struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Category          string                  `json:"category"`
	Difficulty        string                  `json:"difficulty"`
	ComplexityScore   int                     `json:"complexity_score"`
	TypicalYield      int                     `json:"typical_yield"`
	ServingMassG      float64                 `json:"serving_mass_g"`
	PrepTimeMin       int                     `json:"preparation_time_minutes"`
	BakeTimeMin       int                     `json:"baking_time_minutes"`
	ChillTimeMin      int                     `json:"chill_time_minutes"`
	TotalTimeMin      int                     `json:"total_time_minutes"`
	BakeTempCelsius   int                     `json:"baking_temperature_celsius,omitempty"`
	Components        []ComponentDetail       `json:"components"`
	SpecialEquipment  []string                `json:"special_equipment,omitempty"`
	CriticalTechnique []string                `json:"critical_techniques,omitempty"`
	CommonFailures    []string                `json:"common_failure_points,omitempty"`
	SuccessIndicators []string                `json:"success_indicators,omitempty"`
	Baseline          model.FootprintBaseline `json:"traditional_baseline_per_serving"`
	Storage           string                  `json:"storage_instructions"`
	ShelfLifeDays     int                     `json:"shelf_life_days"`
	Notes             string                  `json:"notes,omitempty"`
}

// ScaleRequest re-formulates a dessert and scales it to a new serving count.
type ScaleRequest struct {
	service.FormulationRequest
	TargetServings int `json:"target_servings"`
}

func toIngredientSummary(ing *model.Ingredient) IngredientSummary {
	return IngredientSummary{
		ID:           ing.ID,
		Name:         ing.Name,
		Category:     string(ing.Category),
		Roles:        ing.Roles,
		CO2KgPerKg:   ing.Sustainability.CO2KgPerKg,
		CostPerKgEUR: ing.CostPerKgEUR,
		Allergens:    ing.Allergens,
		Availability: string(ing.Availability),
	}
}

func toDessertSummary(t *model.DessertTemplate) DessertSummary {
	return DessertSummary{
		ID:              t.ID,
		Name:            t.Name,
		Category:        t.Category,
		Difficulty:      string(t.Difficulty),
		ComplexityScore: t.ComplexityScore(),
		Components:      len(t.Components),
		TypicalYield:    t.TypicalYield,
		TotalTimeMin:    t.TotalTimeMin(),
	}
}

func toDessertDetail(t *model.DessertTemplate) DessertDetail {
	components := make([]ComponentDetail, 0, len(t.Components))
	for _, comp := range t.Components {
		roles := make([]string, 0, len(comp.RequiredRoles))
		for _, r := range comp.RequiredRoles {
			roles = append(roles, string(r))
		}
		components = append(components, ComponentDetail{
			Name:           comp.Name,
			WeightFraction: comp.WeightFraction,
			RequiredRoles:  roles,
			TextureTargets: comp.TextureTargets,
			Parts:          len(comp.Parts),
			Steps:          len(comp.Steps),
		})
	}

	return DessertDetail{
		ID:                t.ID,
		Name:              t.Name,
		Category:          t.Category,
		Difficulty:        string(t.Difficulty),
		ComplexityScore:   t.ComplexityScore(),
		TypicalYield:      t.TypicalYield,
		ServingMassG:      t.ServingMassG,
		PrepTimeMin:       t.PrepTimeMin,
		BakeTimeMin:       t.BakeTimeMin,
		ChillTimeMin:      t.ChillTimeMin,
		TotalTimeMin:      t.TotalTimeMin(),
		BakeTempCelsius:   t.BakeTempCelsius,
		Components:        components,
		SpecialEquipment:  t.SpecialEquipment,
		CriticalTechnique: t.CriticalTechnique,
		CommonFailures:    t.CommonFailures,
		SuccessIndicators: t.SuccessIndicators,
		Baseline:          t.Baseline,
		Storage:           t.Storage,
		ShelfLifeDays:     t.ShelfLifeDays,
		Notes:             t.Notes,
	}
}
