package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/plantissier/backend/internal/model"
)

func TestCostReportEclair(t *testing.T) {
	svc := newTestService(t)
	recipe, err := svc.Formulate(eclairRequest())
	require.NoError(t, err)

	cost := recipe.Cost
	require.NotNil(t, cost)

	assert.InDelta(t, 5.99, cost.IngredientCostTotal, 1e-9)
	assert.InDelta(t, 30.00, cost.LaborCost, 1e-9)
	assert.InDelta(t, 0.90, cost.OverheadCost, 1e-9)
	assert.InDelta(t, 36.89, cost.TotalCost, 1e-9)
	assert.InDelta(t, 3.07, cost.CostPerServing, 1e-9)
	assert.InDelta(t, 2.50, cost.LaborCostPerServing, 1e-9)
	assert.InDelta(t, 9.22, cost.SuggestedRetailPrice, 1e-9)
	assert.InDelta(t, 66.7, cost.ProfitMarginPercent, 1e-9)
	assert.Equal(t, "cafe", cost.Venue)
	assert.True(t, cost.WithinBudget)

	assert.InDelta(t, 1.80, cost.Breakdown["oat_cream"], 1e-9)
	assert.InDelta(t, 1.56, cost.Breakdown["vanilla_extract"], 1e-9)
	// Both salt pinches land on one key and round to a rounding error.
	assert.InDelta(t, 0.00, cost.Breakdown["salt"], 1e-9)
	assert.InDelta(t, 0.00, cost.Breakdown["water"], 1e-9)
}

func TestCostScalingTable(t *testing.T) {
	svc := newTestService(t)
	recipe, err := svc.Formulate(eclairRequest())
	require.NoError(t, err)

	table := recipe.Cost.ScalingTable
	require.Len(t, table, 4)

	want := []struct {
		factor         float64
		servings       int
		labor          float64
		total          float64
		costPerServing float64
	}{
		{1, 12, 30.00, 36.89, 3.07},
		{2, 24, 54.00, 67.79, 2.82},
		{4, 48, 90.00, 117.57, 2.45},
		{8, 96, 144.00, 199.15, 2.07},
	}
	for i, w := range want {
		row := table[i]
		assert.InDelta(t, w.factor, row.Factor, 1e-9)
		assert.Equal(t, w.servings, row.Servings)
		assert.InDelta(t, w.labor, row.LaborCost, 1e-9)
		assert.InDelta(t, w.total, row.TotalCost, 1e-9)
		assert.InDelta(t, w.costPerServing, row.CostPerServing, 1e-9)
	}
	for i := 1; i < len(table); i++ {
		assert.Less(t, table[i].CostPerServing, table[i-1].CostPerServing,
			"larger batches must cost less per serving")
	}
}

func TestCostReductionsEclair(t *testing.T) {
	svc := newTestService(t)
	recipe, err := svc.Formulate(eclairRequest())
	require.NoError(t, err)

	// Oat cream carries 30% of the spend but has no cheaper substitute, so
	// the only lever is bulk purchasing. Vanilla is over the share threshold
	// too, yet as a specialty item without substitutes it offers no lever at
	// all and is dropped.
	reductions := recipe.Cost.Reductions
	require.Len(t, reductions, 1)

	r := reductions[0]
	assert.Equal(t, "oat_cream", r.IngredientID)
	assert.Equal(t, "Oat Cream", r.Name)
	assert.InDelta(t, 1.80, r.Cost, 1e-9)
	assert.InDelta(t, 30.0, r.SharePercent, 1e-9)
	assert.Equal(t, []string{"Consider bulk purchasing for 10-15% savings"}, r.Suggestions)
}

func TestLaborCostRates(t *testing.T) {
	svc := newTestService(t)
	calc := NewCostCalculator(svc.Catalog())

	assert.InDelta(t, 15, calc.LaborCost(model.DifficultyBeginner, 60, 1), 1e-9)
	assert.InDelta(t, 20, calc.LaborCost(model.DifficultyIntermediate, 60, 1), 1e-9)
	assert.InDelta(t, 25, calc.LaborCost(model.DifficultyAdvanced, 60, 1), 1e-9)
	assert.InDelta(t, 30, calc.LaborCost(model.DifficultyExpert, 60, 1), 1e-9)
	// Unrecognized difficulty falls back to the intermediate rate.
	assert.InDelta(t, 20, calc.LaborCost(model.Difficulty("wizard"), 60, 1), 1e-9)
	// 90 minutes at the intermediate rate.
	assert.InDelta(t, 30, calc.LaborCost(model.DifficultyIntermediate, 90, 1), 1e-9)
}

func TestLaborScaleCurve(t *testing.T) {
	cases := []struct {
		factor, scale float64
	}{
		{0.5, 0.5},
		{1, 1.0},
		{1.5, 1.4},
		{2, 1.8},
		{3, 2.4},
		{5, 3.6},
		{6, 4.0},
		{8, 4.8},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.scale, laborScale(tc.factor), 1e-9, "factor %.1f", tc.factor)
	}
}

func TestCostVenueProfiles(t *testing.T) {
	svc := newTestService(t)
	calc := NewCostCalculator(svc.Catalog())

	recipe := &model.Recipe{
		Servings: 4,
		Ingredients: []model.RecipeIngredient{
			{Component: "Base", IngredientID: "cane_sugar", Name: "Cane Sugar", Amount: 2000, Unit: "g"},
		},
	}
	tmpl := &model.DessertTemplate{ID: "syrup", Difficulty: model.DifficultyBeginner, PrepTimeMin: 60}

	cases := []struct {
		venue    string
		overhead float64
		margin   float64
	}{
		{VenueCafe, 0.57, 66.7},
		{VenueRestaurant, 0.76, 71.4},
		{VenueCanteen, 0.38, 33.3},
		{VenueBakery, 0.46, 60.0},
	}
	for _, tc := range cases {
		t.Run(tc.venue, func(t *testing.T) {
			report, err := calc.Evaluate(recipe, tmpl, tc.venue, 0, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.venue, report.Venue)
			assert.InDelta(t, 3.80, report.IngredientCostTotal, 1e-9)
			assert.InDelta(t, 15.00, report.LaborCost, 1e-9)
			assert.InDelta(t, tc.overhead, report.OverheadCost, 1e-9)
			assert.InDelta(t, tc.margin, report.ProfitMarginPercent, 1e-9)
			assert.True(t, report.WithinBudget, "zero budget means no limit")
		})
	}

	// An empty venue falls back to the cafe profile.
	report, err := calc.Evaluate(recipe, tmpl, "", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, VenueCafe, report.Venue)
	assert.InDelta(t, 4.84, report.CostPerServing, 1e-9)
}

func TestCostBudgetBoundary(t *testing.T) {
	svc := newTestService(t)
	calc := NewCostCalculator(svc.Catalog())

	recipe := &model.Recipe{
		Servings: 4,
		Ingredients: []model.RecipeIngredient{
			{Component: "Base", IngredientID: "cane_sugar", Name: "Cane Sugar", Amount: 2000, Unit: "g"},
		},
	}
	tmpl := &model.DessertTemplate{ID: "syrup", Difficulty: model.DifficultyBeginner, PrepTimeMin: 60}

	over, err := calc.Evaluate(recipe, tmpl, VenueCafe, 4.85, 1)
	require.NoError(t, err)
	assert.True(t, over.WithinBudget)

	under, err := calc.Evaluate(recipe, tmpl, VenueCafe, 4.80, 1)
	require.NoError(t, err)
	assert.False(t, under.WithinBudget)
}

func TestCostMissingIngredientIsDataFault(t *testing.T) {
	svc := newTestService(t)
	calc := NewCostCalculator(svc.Catalog())

	recipe := &model.Recipe{
		Servings: 1,
		Ingredients: []model.RecipeIngredient{
			{Component: "Base", IngredientID: "butter", Name: "Butter", Amount: 100, Unit: "g"},
		},
	}
	tmpl, ok := svc.Registry().Get("eclair")
	require.True(t, ok)

	_, err := calc.Evaluate(recipe, tmpl, VenueCafe, 0, 1)
	require.Error(t, err)

	var dataErr *DataIntegrityError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "butter", dataErr.IngredientID)
}

func TestBreakEvenVolume(t *testing.T) {
	svc := newTestService(t)
	calc := NewCostCalculator(svc.Catalog())

	assert.Equal(t, 501, calc.BreakEvenVolume(3, 5, 1000))
	assert.Equal(t, 500, calc.BreakEvenVolume(2, 4, 999))
	assert.Equal(t, 0, calc.BreakEvenVolume(3, 5, 0))
	// Selling at or below cost never breaks even.
	assert.Equal(t, -1, calc.BreakEvenVolume(3, 3, 100))
	assert.Equal(t, -1, calc.BreakEvenVolume(5, 3, 100))
}
