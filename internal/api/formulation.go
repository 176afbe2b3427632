package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/plantissier/backend/internal/service"
)

// FormulationHandler exposes recipe formulation, scaling and footprint
// comparison. The service is stateless, so every request carries the full
// formulation parameters.
type FormulationHandler struct {
	svc *service.FormulationService
}

func NewFormulationHandler(svc *service.FormulationService) *FormulationHandler {
	return &FormulationHandler{svc: svc}
}

func (h *FormulationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/formulate", h.Formulate)
	router.POST("/scale", h.Scale)
	router.POST("/compare", h.Compare)
}

func (h *FormulationHandler) Formulate(c *gin.Context) {
	var req service.FormulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.svc.Formulate(&req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *FormulationHandler) Scale(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.FormulationRequest.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TargetServings <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_servings must be positive"})
		return
	}

	recipe, err := h.svc.Formulate(&req.FormulationRequest)
	if err != nil {
		c.Error(err)
		return
	}
	scaled, err := h.svc.ScaleRecipe(recipe, req.TargetServings)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, scaled)
}

func (h *FormulationHandler) Compare(c *gin.Context) {
	var req service.FormulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comparison, err := h.svc.Compare(&req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}
