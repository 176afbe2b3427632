package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/plantissier/backend/config"
	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/database"
	"github.com/pageza/plantissier/backend/internal/middleware"
	"github.com/pageza/plantissier/backend/internal/model"
	"github.com/pageza/plantissier/backend/internal/router"
	"github.com/pageza/plantissier/backend/internal/server"
	"github.com/pageza/plantissier/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Load ingredient catalog
	cat, err := catalog.Load(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to load ingredient catalog",
			zap.String("source", cfg.CatalogSource),
			zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.String("source", cfg.CatalogSource),
		zap.Int("ingredients", cat.Len()))

	// Initialize formulation service
	tuning := service.DefaultTuning()
	if cfg.BandTolerance > 0 {
		tuning.BandTolerance = cfg.BandTolerance
	}
	if cfg.DefaultVenue != "" {
		tuning.DefaultVenue = cfg.DefaultVenue
	}
	svc := service.NewFormulationService(cat, model.NewDessertRegistry(), tuning)

	// Initialize token validation. Assigning only on the non-empty branch
	// keeps the interface nil when auth is off; a typed-nil *TokenService
	// would make the router install auth middleware anyway.
	var tokens middleware.TokenValidator
	if cfg.ServiceTokenSecret != "" {
		tokens = service.NewTokenService(cfg.ServiceTokenSecret)
	} else {
		logger.Warn("No service token secret configured, API is unauthenticated")
	}

	// Initialize redis for rate limiting. The API works without it.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	}

	r := router.SetupRouter(svc, tokens, redisClient, logger, cfg)

	srv := server.New(r, logger)
	if err := srv.Start(cfg.ServerHost, cfg.ServerPort); err != nil {
		logger.Fatal("Server terminated", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if config.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
