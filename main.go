package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/foodhealth/food-health-tracker/internal/cache"
	"github.com/foodhealth/food-health-tracker/internal/config"
	"github.com/foodhealth/food-health-tracker/internal/database"
	"github.com/foodhealth/food-health-tracker/internal/logger"
	"github.com/foodhealth/food-health-tracker/internal/openfoodfacts"
	"github.com/foodhealth/food-health-tracker/internal/server"
	"github.com/foodhealth/food-health-tracker/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting Food Health Tracker API...")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// The barcode cache is optional: an unreachable Redis disables caching
	// but never blocks startup.
	var productCache services.ProductCache
	redisCache, err := cache.NewProductCache(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.CacheTTL)
	if err != nil {
		logger.Warn("Redis unavailable, barcode caching disabled", "error", err)
	} else {
		productCache = redisCache
		defer redisCache.Close()
	}

	regionalClient := openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:           cfg.OpenFoodFacts.RegionalBaseURL,
		Country:           cfg.OpenFoodFacts.RegionalCountry,
		Timeout:           cfg.OpenFoodFacts.RequestTimeout,
		RequestsPerSecond: cfg.OpenFoodFacts.RequestsPerSecond,
	})
	globalClient := openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:           cfg.OpenFoodFacts.GlobalBaseURL,
		Timeout:           cfg.OpenFoodFacts.RequestTimeout,
		RequestsPerSecond: cfg.OpenFoodFacts.RequestsPerSecond,
	})

	foodService := services.NewFoodService(regionalClient, globalClient, productCache)
	trackingService := services.NewTrackingService(db)
	statusService := services.NewStatusService(db)
	logger.Info("Services initialized successfully")

	srv := server.New(foodService, trackingService, statusService)

	go func() {
		if err := srv.Listen(cfg.Server.Port); err != nil {
			logger.Fatalf("Server stopped with error: %v", err)
		}
	}()
	logger.Info("Server is running", "port", cfg.Server.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
