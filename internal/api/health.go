package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// HealthHandler reports service liveness and what the loaded dataset can
// formulate.
type HealthHandler struct {
	catalog  *catalog.Catalog
	registry *model.DessertRegistry
}

func NewHealthHandler(cat *catalog.Catalog, registry *model.DessertRegistry) *HealthHandler {
	return &HealthHandler{catalog: cat, registry: registry}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"ingredients": h.catalog.Len(),
		"desserts":    h.registry.Len(),
		"dessert_ids": h.registry.IDs(),
	})
}
