package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foodhealth/food-health-tracker/internal/apperrors"
	"github.com/foodhealth/food-health-tracker/internal/food"
	"github.com/foodhealth/food-health-tracker/internal/logger"
)

const defaultSearchLimit = 20

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type trackRequest struct {
	UserID      string       `json:"user_id"`
	FoodProduct food.Product `json:"food_product"`
	Quantity    float64      `json:"quantity"`
}

type statusCheckRequest struct {
	ClientName string `json:"client_name"`
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Food Health Tracker API"})
}

func (s *Server) handleCreateStatusCheck(c *fiber.Ctx) error {
	var req statusCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, apperrors.NewValidationError("invalid request body"))
	}

	check, err := s.status.CreateStatusCheck(c.Context(), req.ClientName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(check)
}

func (s *Server) handleListStatusChecks(c *fiber.Ctx) error {
	checks, err := s.status.ListStatusChecks(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(checks)
}

func (s *Server) handleSearchFood(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, apperrors.NewValidationError("invalid request body"))
	}
	if req.Limit == 0 {
		req.Limit = defaultSearchLimit
	}

	products, err := s.food.SearchProducts(c.Context(), req.Query, req.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

func (s *Server) handleGetFoodByBarcode(c *fiber.Ctx) error {
	product, err := s.food.GetProductByBarcode(c.Context(), c.Params("barcode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

func (s *Server) handleTrackFood(c *fiber.Ctx) error {
	var req trackRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, apperrors.NewValidationError("invalid request body"))
	}

	entry, err := s.tracking.TrackFood(c.Context(), req.UserID, req.FoodProduct, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}

func (s *Server) handleGetFoodTracking(c *fiber.Ctx) error {
	entries, err := s.tracking.GetUserTracking(c.Context(), c.Params("user_id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

func (s *Server) handleDeleteFoodTracking(c *fiber.Ctx) error {
	if err := s.tracking.DeleteTracking(c.Context(), c.Params("entry_id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tracking entry deleted successfully"})
}

func (s *Server) handleListCategories(c *fiber.Ctx) error {
	return c.JSON(s.food.Categories())
}

// writeError maps an application error to its transport status. Validation
// and not-found outcomes are expected request results; anything else is a
// server-side failure and gets logged.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	detail := "internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			status = fiber.StatusBadRequest
			detail = appErr.Message
		case apperrors.ErrorTypeNotFound:
			status = fiber.StatusNotFound
			detail = appErr.Message
		default:
			logger.Error("request failed", appErr.LogFields()...)
		}
	} else {
		logger.Error("request failed", "error", err.Error())
	}

	return c.Status(status).JSON(fiber.Map{"detail": detail})
}
