package model

// RecipeIngredient is one selected ingredient line, tied to the component
// and part slot it fills.
type RecipeIngredient struct {
	Component    string  `json:"component"`
	PartKey      string  `json:"part_key"`
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"ingredient_name"`
	Amount       float64 `json:"amount"`
	Unit         Unit    `json:"unit"`
	PrepNote     string  `json:"preparation_notes,omitempty"`
}

// RecipeStep is one expanded instruction.
type RecipeStep struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
	DurationMin int    `json:"duration_minutes,omitempty"`
	TempCelsius int    `json:"temperature_celsius,omitempty"`
	Critical    bool   `json:"critical"`
	Tips        string `json:"tips,omitempty"`
}

// ImpactItem is one ingredient's share of the recipe CO2 footprint.
type ImpactItem struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"ingredient_name"`
	CO2Kg        float64 `json:"co2_kg"`
	SharePercent float64 `json:"share_percent"`
}

// ReductionVsTraditional compares the formulation to the conventional
// dairy-and-egg version, in percent. Negative values mean worse.
type ReductionVsTraditional struct {
	CO2Percent   float64 `json:"co2_percent"`
	WaterPercent float64 `json:"water_percent"`
	LandPercent  float64 `json:"land_percent"`
}

// SustainabilityReport is the environmental assessment of a recipe.
type SustainabilityReport struct {
	TotalCO2Kg       float64                `json:"total_co2_kg"`
	TotalWaterL      float64                `json:"total_water_liters"`
	TotalLandM2      float64                `json:"total_land_m2"`
	CO2PerServingKg  float64                `json:"co2_per_serving_kg"`
	WaterPerServingL float64                `json:"water_per_serving_liters"`
	LandPerServingM2 float64                `json:"land_per_serving_m2"`
	Grade            string                 `json:"sustainability_grade"`
	Reduction        ReductionVsTraditional `json:"reduction_vs_traditional"`
	Breakdown        []ImpactItem           `json:"impact_breakdown"`
	Recommendations  []string               `json:"recommendations"`
	Equivalents      map[string]float64     `json:"carbon_equivalents"`
}

// BatchScaling is one row of the cost scaling table.
type BatchScaling struct {
	Factor         float64 `json:"batch_factor"`
	Servings       int     `json:"servings"`
	IngredientCost float64 `json:"ingredient_cost"`
	LaborCost      float64 `json:"labor_cost"`
	OverheadCost   float64 `json:"overhead_cost"`
	TotalCost      float64 `json:"total_cost"`
	CostPerServing float64 `json:"cost_per_serving"`
}

// CostReduction is one savings opportunity on a heavy cost contributor.
type CostReduction struct {
	IngredientID string   `json:"ingredient_id"`
	Name         string   `json:"ingredient_name"`
	Cost         float64  `json:"cost"`
	SharePercent float64  `json:"share_percent"`
	Suggestions  []string `json:"suggestions"`
}

// CostReport is the production cost assessment of a recipe.
type CostReport struct {
	IngredientCostTotal  float64            `json:"ingredient_cost_total"`
	LaborCost            float64            `json:"labor_cost"`
	OverheadCost         float64            `json:"overhead_cost"`
	TotalCost            float64            `json:"total_cost"`
	CostPerServing       float64            `json:"cost_per_serving"`
	LaborCostPerServing  float64            `json:"labor_cost_per_serving"`
	SuggestedRetailPrice float64            `json:"suggested_retail_price"`
	ProfitMarginPercent  float64            `json:"profit_margin_percent"`
	Venue                string             `json:"venue"`
	Breakdown            map[string]float64 `json:"cost_breakdown"`
	WithinBudget         bool               `json:"is_within_budget"`
	ScalingTable         []BatchScaling     `json:"scaling_table"`
	Reductions           []CostReduction    `json:"cost_reductions,omitempty"`
}

// PredictionReport is the culinary outcome assessment of a recipe.
type PredictionReport struct {
	SuccessProbability float64           `json:"success_probability"`
	StabilityScore     float64           `json:"stability_score"`
	Textures           map[string]string `json:"texture_predictions"`
	RiskWarnings       []string          `json:"risk_warnings"`
	Optimizations      []string          `json:"optimization_suggestions"`
}

// NutritionEstimate approximates per-serving nutrition from catalog
// properties; carbohydrates are derived by difference.
type NutritionEstimate struct {
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinG           float64 `json:"protein_g"`
	FatG               float64 `json:"fat_g"`
	CarbsG             float64 `json:"carbs_g"`
	FiberG             float64 `json:"fiber_g"`
	SugarG             float64 `json:"sugar_g"`
	SodiumMg           float64 `json:"sodium_mg"`
}

// BudgetWarning annotates a recipe whose cost exceeds the requested budget.
// The budget is advisory, so this never fails a formulation.
type BudgetWarning struct {
	LimitPerServing float64 `json:"limit_per_serving"`
	CostPerServing  float64 `json:"cost_per_serving"`
	Shortfall       float64 `json:"shortfall"`
}

// FormulationParams echoes the request inputs that shaped a recipe.
type FormulationParams struct {
	Constraints   []string `json:"dietary_constraints"`
	Priority      string   `json:"sustainability_priority"`
	BudgetPerUnit float64  `json:"budget_per_unit"`
	Venue         string   `json:"venue"`
}

// Recipe is the full formulation artifact. It exists only for the response;
// nothing persists it.
type Recipe struct {
	ID               string                `json:"id"`
	DessertID        string                `json:"dessert_id"`
	DessertName      string                `json:"dessert_name"`
	Version          int                   `json:"version"`
	Servings         int                   `json:"yield_servings"`
	Ingredients      []RecipeIngredient    `json:"ingredients"`
	Instructions     []RecipeStep          `json:"instructions"`
	DietaryLabels    []string              `json:"dietary_labels"`
	AllergenWarnings []string              `json:"allergen_warnings"`
	PrepTimeMin      int                   `json:"preparation_time_minutes"`
	BakeTimeMin      int                   `json:"baking_time_minutes"`
	ChillTimeMin     int                   `json:"chill_time_minutes"`
	TotalTimeMin     int                   `json:"total_time_minutes"`
	Storage          string                `json:"storage_instructions"`
	ShelfLifeDays    int                   `json:"shelf_life_days"`
	ScalingNotes     string                `json:"scaling_notes"`
	Nutrition        *NutritionEstimate    `json:"nutritional_info,omitempty"`
	Sustainability   *SustainabilityReport `json:"sustainability,omitempty"`
	Cost             *CostReport           `json:"cost_analysis,omitempty"`
	Prediction       *PredictionReport     `json:"predictive_analysis,omitempty"`
	BudgetWarning    *BudgetWarning        `json:"budget_warning,omitempty"`
	Params           FormulationParams     `json:"formulation_parameters"`
}

// ComponentMass sums the rounded ingredient amounts of one component, in the
// ingredient's native unit (grams or milliliters, both mass-equivalent here).
func (r *Recipe) ComponentMass(component string) float64 {
	var sum float64
	for _, ing := range r.Ingredients {
		if ing.Component == component {
			sum += ing.Amount
		}
	}
	return sum
}

// TotalMass sums all rounded ingredient amounts.
func (r *Recipe) TotalMass() float64 {
	var sum float64
	for _, ing := range r.Ingredients {
		sum += ing.Amount
	}
	return sum
}

// ContainsIngredient reports whether any line selects the given catalog id.
func (r *Recipe) ContainsIngredient(id string) bool {
	for _, ing := range r.Ingredients {
		if ing.IngredientID == id {
			return true
		}
	}
	return false
}
