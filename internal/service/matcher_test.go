package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

func newTestMatcher(t *testing.T) (*IngredientMatcher, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return NewIngredientMatcher(cat, DefaultTuning()), cat
}

func matchIDs(ranked []*model.Ingredient) []string {
	ids := make([]string, len(ranked))
	for i, ing := range ranked {
		ids[i] = ing.ID
	}
	return ids
}

func TestMatchRanksFatStructuringSlot(t *testing.T) {
	m, _ := newTestMatcher(t)

	band := map[string]model.Band{model.PropFat: {Min: 70, Max: 100}}
	ranked := m.Match(model.RoleFatStructuring, band, nil, PriorityBalanced, nil)

	require.NotEmpty(t, ranked)
	assert.Equal(t, []string{"vegan_butter", "coconut_oil_refined", "cocoa_butter"}, matchIDs(ranked))
}

func TestMatchPriorityChangesWinner(t *testing.T) {
	m, _ := newTestMatcher(t)

	// A chocolate glaze setting fat. Balanced ranking favors the cheaper
	// coconut oil; minimizing water flips the slot to cocoa butter, whose
	// water footprint is a fraction of coconut oil's.
	band := map[string]model.Band{model.PropFat: {Min: 90, Max: 100}}

	balanced := m.Match(model.RoleCrystallization, band, nil, PriorityBalanced, nil)
	require.NotEmpty(t, balanced)
	assert.Equal(t, "coconut_oil_refined", balanced[0].ID)

	lowWater := m.Match(model.RoleCrystallization, band, nil, PriorityLowWater, nil)
	require.NotEmpty(t, lowWater)
	assert.Equal(t, "cocoa_butter", lowWater[0].ID)
}

func TestMatchHonorsDietaryConstraints(t *testing.T) {
	m, _ := newTestMatcher(t)
	band := map[string]model.Band{model.PropFat: {Min: 18, Max: 24}}

	ranked := m.Match(model.RoleEmulsification, band, nil, PriorityBalanced, nil)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "coconut_cream", ranked[0].ID)

	ranked = m.Match(model.RoleEmulsification, band,
		[]model.DietaryConstraint{model.ConstraintCoconutFree}, PriorityBalanced, nil)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "cashew_cream", ranked[0].ID)
	for _, ing := range ranked {
		assert.False(t, ing.HasAllergen("coconut"), "coconut slipped past the constraint: %s", ing.ID)
	}

	ranked = m.Match(model.RoleEmulsification, band,
		[]model.DietaryConstraint{model.ConstraintCoconutFree, model.ConstraintNutFree}, PriorityBalanced, nil)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "oat_cream", ranked[0].ID)
}

func TestMatchReturnsEmptyWhenNothingQualifies(t *testing.T) {
	m, _ := newTestMatcher(t)

	// Every browning-capable ingredient carries added sugar.
	ranked := m.Match(model.RoleBrowning, nil,
		[]model.DietaryConstraint{model.ConstraintSugarFree}, PriorityBalanced, nil)
	assert.Empty(t, ranked)
}

func TestMatchBandOverridesNarrowSlot(t *testing.T) {
	m, _ := newTestMatcher(t)

	// The sweetener slot of a baked component wants dry sugars; maple syrup
	// at 32% water ranks far behind despite its good footprint.
	band := map[string]model.Band{model.PropWater: {Min: 0, Max: 2}}
	ranked := m.Match(model.RoleSweetening, band, nil, PriorityBalanced, nil)

	require.NotEmpty(t, ranked)
	assert.Equal(t, "cane_sugar", ranked[0].ID)
	assert.Equal(t, "maple_syrup", ranked[len(ranked)-1].ID)
}

func TestMatchScarcityPenalty(t *testing.T) {
	base := model.Ingredient{
		Category:     model.CategorySweetener,
		Roles:        model.JSONBStringArray{string(model.RoleSweetening)},
		Properties:   model.Properties{model.PropWater: 1},
		CostPerKgEUR: 2.0,
		Unit:         model.UnitGram,
	}
	common := base
	common.ID, common.Name, common.Availability = "everyday", "Everyday Sugar", model.AvailabilityCommon
	rare := base
	rare.ID, rare.Name, rare.Availability = "hard_to_find", "Hard To Find Sugar", model.AvailabilityRare

	// Identical records except availability; the rare one lists first.
	cat, err := catalog.New([]model.Ingredient{rare, common})
	require.NoError(t, err)
	m := NewIngredientMatcher(cat, DefaultTuning())

	ranked := m.Match(model.RoleSweetening, nil, nil, PriorityBalanced, nil)
	require.Len(t, ranked, 2)
	assert.Equal(t, "everyday", ranked[0].ID)
	assert.Equal(t, "hard_to_find", ranked[1].ID)
}

func TestMatchEqualScoresKeepCatalogOrder(t *testing.T) {
	base := model.Ingredient{
		Category:     model.CategoryStabilizer,
		Roles:        model.JSONBStringArray{string(model.RoleThickening)},
		Properties:   model.Properties{model.PropViscosity: 8000},
		CostPerKgEUR: 3.0,
		Availability: model.AvailabilityCommon,
		Unit:         model.UnitGram,
	}
	var ingredients []model.Ingredient
	for _, id := range []string{"thickener_c", "thickener_a", "thickener_b"} {
		ing := base
		ing.ID, ing.Name = id, id
		ingredients = append(ingredients, ing)
	}
	cat, err := catalog.New(ingredients)
	require.NoError(t, err)
	m := NewIngredientMatcher(cat, DefaultTuning())

	ranked := m.Match(model.RoleThickening, nil, nil, PriorityBalanced, nil)
	assert.Equal(t, []string{"thickener_c", "thickener_a", "thickener_b"}, matchIDs(ranked))
}

func TestSelectionRejectsDuplicateInComponent(t *testing.T) {
	m, cat := newTestMatcher(t)
	sel := NewSelection()
	sel.Add("cornstarch")

	cornstarch, ok := cat.GetByID("cornstarch")
	require.True(t, ok)
	assert.False(t, sel.Compatible(cornstarch, cat))

	// A new component may reuse the same ingredient.
	sel.StartComponent()
	assert.True(t, sel.Compatible(cornstarch, cat))

	ranked := m.Match(model.RoleThickening, nil, nil, PriorityBalanced, sel)
	assert.Contains(t, matchIDs(ranked), "cornstarch")
}

func TestSelectionRejectsIncompatiblePairAcrossComponents(t *testing.T) {
	m, cat := newTestMatcher(t)
	sel := NewSelection()
	sel.Add("xanthan_gum")
	sel.StartComponent()

	guar, ok := cat.GetByID("guar_gum")
	require.True(t, ok)
	assert.False(t, sel.Compatible(guar, cat),
		"gum incompatibility must hold across components")

	ranked := m.Match(model.RoleThickening, nil, nil, PriorityBalanced, sel)
	ids := matchIDs(ranked)
	assert.NotContains(t, ids, "guar_gum")
	assert.Contains(t, ids, "cornstarch")
}

func TestSelectionIncompatibilityIsSymmetric(t *testing.T) {
	// Only one side declaring the conflict must still block both orders.
	a := model.Ingredient{
		ID: "gum_a", Name: "Gum A", Category: model.CategoryStabilizer,
		Roles:            model.JSONBStringArray{string(model.RoleThickening)},
		Properties:       model.Properties{model.PropViscosity: 20000},
		CostPerKgEUR:     5,
		Availability:     model.AvailabilityCommon,
		IncompatibleWith: model.JSONBStringArray{"gum_b"},
		Unit:             model.UnitGram,
	}
	b := model.Ingredient{
		ID: "gum_b", Name: "Gum B", Category: model.CategoryStabilizer,
		Roles:        model.JSONBStringArray{string(model.RoleThickening)},
		Properties:   model.Properties{model.PropViscosity: 21000},
		CostPerKgEUR: 5,
		Availability: model.AvailabilityCommon,
		Unit:         model.UnitGram,
	}
	cat, err := catalog.New([]model.Ingredient{a, b})
	require.NoError(t, err)

	sel := NewSelection()
	sel.Add("gum_b")
	ingA, _ := cat.GetByID("gum_a")
	assert.False(t, sel.Compatible(ingA, cat))

	sel = NewSelection()
	sel.Add("gum_a")
	ingB, _ := cat.GetByID("gum_b")
	assert.False(t, sel.Compatible(ingB, cat))
}

func TestFindSubstitutes(t *testing.T) {
	m, _ := newTestMatcher(t)

	subs, err := m.FindSubstitutes("oat_cream", nil)
	require.NoError(t, err)
	// Declared substitutes first, then role-overlap discoveries.
	assert.Equal(t, []string{"coconut_cream", "cashew_cream", "vegan_butter"}, matchIDs(subs))

	subs, err = m.FindSubstitutes("oat_cream",
		[]model.DietaryConstraint{model.ConstraintCoconutFree, model.ConstraintNutFree})
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan_butter"}, matchIDs(subs))
}

func TestFindSubstitutesByRoleOverlap(t *testing.T) {
	m, _ := newTestMatcher(t)

	subs, err := m.FindSubstitutes("xanthan_gum", nil)
	require.NoError(t, err)
	// Guar gum is declared; the starches share both roles and follow in
	// catalog order. Agar only thickens, so it stays out.
	assert.Equal(t, []string{"guar_gum", "cornstarch", "tapioca_starch"}, matchIDs(subs))
}

func TestFindSubstitutesUnknownIngredient(t *testing.T) {
	m, _ := newTestMatcher(t)

	subs, err := m.FindSubstitutes("heavy_cream", nil)
	assert.Error(t, err)
	assert.Nil(t, subs)
	assert.Contains(t, err.Error(), "heavy_cream")
}

func TestFindMultiRole(t *testing.T) {
	m, _ := newTestMatcher(t)

	roles := []model.Role{model.RoleFoaming, model.RoleBinding}
	found := m.FindMultiRole(roles, nil)
	// Soy protein isolate covers three roles, aquafaba two.
	assert.Equal(t, []string{"soy_protein_isolate", "aquafaba"}, matchIDs(found))

	found = m.FindMultiRole(roles, []model.DietaryConstraint{model.ConstraintSoyFree})
	assert.Equal(t, []string{"aquafaba"}, matchIDs(found))
}

func TestExplainChoice(t *testing.T) {
	m, cat := newTestMatcher(t)

	vb, ok := cat.GetByID("vegan_butter")
	require.True(t, ok)
	text := m.ExplainChoice(vb, model.RoleFatStructuring)
	assert.Equal(t, "Vegan Butter provides fat structuring with 80.0% fat content (melting point 36°C)", text)

	aqua, ok := cat.GetByID("aquafaba")
	require.True(t, ok)
	text = m.ExplainChoice(aqua, model.RoleFoaming)
	assert.Equal(t, "Aquafaba creates foam and aeration, essential for light texture (foaming capacity 90%). Low environmental impact.", text)

	oat, ok := cat.GetByID("oat_cream")
	require.True(t, ok)
	text = m.ExplainChoice(oat, model.RoleEmulsification)
	assert.Contains(t, text, "acts as emulsifier")
	assert.Contains(t, text, "emulsifying capacity 55%")
	assert.Contains(t, text, "Low environmental impact.")
}

func TestScoreSkipsUndefinedProperties(t *testing.T) {
	m, cat := newTestMatcher(t)

	// Salt defines no viscosity, so a viscosity band contributes nothing to
	// its score and only the priority term remains.
	salt, ok := cat.GetByID("salt")
	require.True(t, ok)
	band := map[string]model.Band{model.PropViscosity: {Min: 5000, Max: 12000}}
	withBand := m.Score(salt, band, PriorityBalanced)
	without := m.Score(salt, nil, PriorityBalanced)
	assert.Equal(t, without, withBand)
}
