package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/plantissier/backend/config"
	"github.com/pageza/plantissier/backend/internal/api"
	"github.com/pageza/plantissier/backend/internal/middleware"
	"github.com/pageza/plantissier/backend/internal/service"
)

// SetupRouter wires middleware and routes. tokens and redisClient may be
// nil: without a token secret the API is open, without redis rate limiting
// is skipped. The health endpoint always stays open.
func SetupRouter(
	svc *service.FormulationService,
	tokens middleware.TokenValidator,
	redisClient *redis.Client,
	logger *zap.Logger,
	cfg *config.Config,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler(logger))

	router.GET("/health", api.NewHealthHandler(svc.Catalog(), svc.Registry()).Check)

	v1 := router.Group("/api/v1")
	if tokens != nil {
		v1.Use(middleware.AuthMiddleware(tokens))
	}
	if redisClient != nil {
		limiter := middleware.NewFormulationRateLimiter(redisClient, cfg.RateLimitWindowSec, cfg.RateLimitMax)
		v1.Use(limiter.RateLimitMiddleware())
	}

	api.NewFormulationHandler(svc).RegisterRoutes(v1)
	api.NewCatalogHandler(svc.Catalog(), svc.Registry()).RegisterRoutes(v1)

	return router
}
