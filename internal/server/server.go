package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/foodhealth/food-health-tracker/internal/database"
	"github.com/foodhealth/food-health-tracker/internal/food"
)

// FoodResolver resolves products from upstream food data sources.
type FoodResolver interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]food.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*food.Product, error)
	Categories() []string
}

// TrackingStore manages per-user consumption entries.
type TrackingStore interface {
	TrackFood(ctx context.Context, userID string, product food.Product, quantity float64) (*database.FoodTrackingEntry, error)
	GetUserTracking(ctx context.Context, userID string, limit int) ([]database.FoodTrackingEntry, error)
	DeleteTracking(ctx context.Context, entryID string) error
}

// StatusRecorder records client status checks.
type StatusRecorder interface {
	CreateStatusCheck(ctx context.Context, clientName string) (*database.StatusCheck, error)
	ListStatusChecks(ctx context.Context) ([]database.StatusCheck, error)
}

// Server is the HTTP edge of the service, exposing the API under /api.
type Server struct {
	app      *fiber.App
	food     FoodResolver
	tracking TrackingStore
	status   StatusRecorder
}

func New(foodSvc FoodResolver, trackingSvc TrackingStore, statusSvc StatusRecorder) *Server {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "*",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	s := &Server{
		app:      app,
		food:     foodSvc,
		tracking: trackingSvc,
		status:   statusSvc,
	}

	api := app.Group("/api")
	api.Get("/", s.handleRoot)
	api.Post("/status", s.handleCreateStatusCheck)
	api.Get("/status", s.handleListStatusChecks)
	api.Post("/food/search", s.handleSearchFood)
	api.Get("/food/barcode/:barcode", s.handleGetFoodByBarcode)
	api.Post("/food/track", s.handleTrackFood)
	api.Get("/food/track/:user_id", s.handleGetFoodTracking)
	api.Delete("/food/track/:entry_id", s.handleDeleteFoodTracking)
	api.Get("/food/categories", s.handleListCategories)

	return s
}

// Listen serves the API on the given port until Shutdown is called.
func (s *Server) Listen(port string) error {
	return s.app.Listen(":" + port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
