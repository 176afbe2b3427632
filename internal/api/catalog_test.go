package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ingredientListResponse struct {
	Ingredients []IngredientSummary `json:"ingredients"`
	Count       int                 `json:"count"`
}

func ingredientIDs(list []IngredientSummary) []string {
	ids := make([]string, 0, len(list))
	for _, ing := range list {
		ids = append(ids, ing.ID)
	}
	return ids
}

func TestListIngredients(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/ingredients", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ingredientListResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 27, resp.Count)
	assert.Len(t, resp.Ingredients, 27)

	ids := ingredientIDs(resp.Ingredients)
	assert.Contains(t, ids, "oat_cream")
	assert.Contains(t, ids, "aquafaba")
	assert.Contains(t, ids, "water")
}

func TestListIngredientsByRole(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/ingredients?role=foaming", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ingredientListResponse
	decodeBody(t, rec, &resp)
	require.NotZero(t, resp.Count)
	assert.Contains(t, ingredientIDs(resp.Ingredients), "aquafaba")
	for _, ing := range resp.Ingredients {
		assert.Contains(t, ing.Roles, "foaming", "ingredient %s", ing.ID)
	}
}

func TestListIngredientsByCategory(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/ingredients?category=sweetener", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ingredientListResponse
	decodeBody(t, rec, &resp)
	require.NotZero(t, resp.Count)

	ids := ingredientIDs(resp.Ingredients)
	assert.Contains(t, ids, "cane_sugar")
	assert.Contains(t, ids, "erythritol")
	for _, ing := range resp.Ingredients {
		assert.Equal(t, "sweetener", ing.Category)
	}
}

func TestListIngredientsAllergenFree(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/ingredients?allergen_free=coconut,cashew,almond", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ingredientListResponse
	decodeBody(t, rec, &resp)
	ids := ingredientIDs(resp.Ingredients)
	assert.NotContains(t, ids, "coconut_cream")
	assert.NotContains(t, ids, "coconut_oil_refined")
	assert.NotContains(t, ids, "cashew_cream")
	assert.NotContains(t, ids, "almond_flour")
	assert.Contains(t, ids, "oat_cream")

	for _, ing := range resp.Ingredients {
		assert.NotContains(t, ing.Allergens, "coconut", "ingredient %s", ing.ID)
		assert.NotContains(t, ing.Allergens, "cashew", "ingredient %s", ing.ID)
		assert.NotContains(t, ing.Allergens, "almond", "ingredient %s", ing.ID)
	}
}

func TestListIngredientsUnknownCategoryIsEmpty(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/ingredients?category=dairy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ingredientListResponse
	decodeBody(t, rec, &resp)
	assert.Zero(t, resp.Count)
}

func TestGetIngredient(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/ingredients/oat_cream", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail IngredientDetail
	decodeBody(t, rec, &detail)
	assert.Equal(t, "oat_cream", detail.ID)
	assert.Equal(t, "Oat Cream", detail.Name)

	require.Len(t, detail.SubstituteDetails, 2)
	assert.Equal(t, "coconut_cream", detail.SubstituteDetails[0].ID)
	assert.Equal(t, "cashew_cream", detail.SubstituteDetails[1].ID)
}

func TestGetIngredientNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/ingredients/heavy_cream", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ingredient not found", resp["error"])
}

type dessertListResponse struct {
	Desserts []DessertSummary `json:"desserts"`
	Count    int              `json:"count"`
}

func TestListDesserts(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/desserts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dessertListResponse
	decodeBody(t, rec, &resp)
	require.Equal(t, 6, resp.Count)

	assert.Equal(t, "eclair", resp.Desserts[0].ID)
	assert.Equal(t, "Éclair", resp.Desserts[0].Name)
	assert.Equal(t, 67, resp.Desserts[0].ComplexityScore)
	assert.Equal(t, 3, resp.Desserts[0].Components)
	assert.Equal(t, 240, resp.Desserts[0].TotalTimeMin)
}

func TestGetDessert(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/desserts/eclair", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail DessertDetail
	decodeBody(t, rec, &detail)
	assert.Equal(t, "eclair", detail.ID)
	assert.Equal(t, "intermediate", detail.Difficulty)
	assert.Equal(t, 12, detail.TypicalYield)
	assert.InDelta(t, 115, detail.ServingMassG, 1e-9)
	assert.InDelta(t, 0.45, detail.Baseline.CO2Kg, 1e-9)

	require.Len(t, detail.Components, 3)
	assert.Equal(t, "Choux Pastry Shell", detail.Components[0].Name)
	assert.Contains(t, detail.Components[0].RequiredRoles, "foaming")
}

func TestGetDessertNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/api/v1/desserts/tiramisu", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status      string   `json:"status"`
		Ingredients int      `json:"ingredients"`
		Desserts    int      `json:"desserts"`
		DessertIDs  []string `json:"dessert_ids"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 27, resp.Ingredients)
	assert.Equal(t, 6, resp.Desserts)
	assert.Contains(t, resp.DessertIDs, "eclair")
	assert.Contains(t, resp.DessertIDs, "mousse")
}
