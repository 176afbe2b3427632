package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// CatalogHandler serves read-only views of the ingredient catalog and the
// dessert template registry.
type CatalogHandler struct {
	catalog  *catalog.Catalog
	registry *model.DessertRegistry
}

func NewCatalogHandler(cat *catalog.Catalog, registry *model.DessertRegistry) *CatalogHandler {
	return &CatalogHandler{catalog: cat, registry: registry}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}

	desserts := router.Group("/desserts")
	{
		desserts.GET("", h.ListDesserts)
		desserts.GET("/:id", h.GetDessert)
	}
}

// ListIngredients returns the catalog in dataset order. Filters: category,
// role, and allergen_free (comma-separated tags the result must not carry).
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	list := h.catalog.GetAll()

	if cat := c.Query("category"); cat != "" {
		list = filterIngredients(list, func(ing *model.Ingredient) bool {
			return ing.Category == model.Category(cat)
		})
	}
	if role := c.Query("role"); role != "" {
		list = filterIngredients(list, func(ing *model.Ingredient) bool {
			return ing.HasRole(model.Role(role))
		})
	}
	if free := c.Query("allergen_free"); free != "" {
		for _, tag := range strings.Split(free, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			list = filterIngredients(list, func(ing *model.Ingredient) bool {
				return !ing.HasAllergen(tag)
			})
		}
	}

	out := make([]IngredientSummary, 0, len(list))
	for _, ing := range list {
		out = append(out, toIngredientSummary(ing))
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": out,
		"count":       len(out),
	})
}

func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	ing, ok := h.catalog.GetByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	detail := IngredientDetail{Ingredient: *ing}
	for _, subID := range ing.Substitutes {
		if sub, ok := h.catalog.GetByID(subID); ok {
			detail.SubstituteDetails = append(detail.SubstituteDetails, toIngredientSummary(sub))
		}
	}

	c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) ListDesserts(c *gin.Context) {
	templates := h.registry.List()
	out := make([]DessertSummary, 0, len(templates))
	for _, tmpl := range templates {
		out = append(out, toDessertSummary(tmpl))
	}

	c.JSON(http.StatusOK, gin.H{
		"desserts": out,
		"count":    len(out),
	})
}

func (h *CatalogHandler) GetDessert(c *gin.Context) {
	tmpl, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "dessert not found"})
		return
	}

	c.JSON(http.StatusOK, toDessertDetail(tmpl))
}

func filterIngredients(list []*model.Ingredient, keep func(*model.Ingredient) bool) []*model.Ingredient {
	out := list[:0:0]
	for _, ing := range list {
		if keep(ing) {
			out = append(out, ing)
		}
	}
	return out
}
