package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodhealth/food-health-tracker/internal/apperrors"
	"github.com/foodhealth/food-health-tracker/internal/database"
	"github.com/foodhealth/food-health-tracker/internal/food"
)

const (
	// DefaultQuantityGrams is assumed when a track request carries no quantity.
	DefaultQuantityGrams = 100
	defaultTrackingLimit = 50
	maxTrackingLimit     = 200
)

// TrackingService records and serves per-user food consumption entries.
type TrackingService struct {
	db *gorm.DB
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

// TrackFood logs a consumed product for a user. The product is stored as an
// immutable snapshot.
func (s *TrackingService) TrackFood(ctx context.Context, userID string, product food.Product, quantity float64) (*database.FoodTrackingEntry, error) {
	entry, err := buildTrackingEntry(userID, product, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entry, nil
}

// buildTrackingEntry validates a track request and assembles the entry. The
// snapshot's rating is re-derived from its score so the stored pair can never
// disagree, whatever the caller sent.
func buildTrackingEntry(userID string, product food.Product, quantity float64) (*database.FoodTrackingEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user_id must not be empty")
	}
	if quantity < 0 {
		return nil, apperrors.NewValidationError("quantity must be positive").WithContext("quantity", quantity)
	}
	if quantity == 0 {
		quantity = DefaultQuantityGrams
	}

	product.HealthRating = food.RatingForScore(product.HealthScore)

	return &database.FoodTrackingEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		FoodProduct: product,
		Quantity:    quantity,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// GetUserTracking returns a user's entries, most recent first.
func (s *TrackingService) GetUserTracking(ctx context.Context, userID string, limit int) ([]database.FoodTrackingEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user_id must not be empty")
	}
	if limit <= 0 {
		limit = defaultTrackingLimit
	}
	if limit > maxTrackingLimit {
		limit = maxTrackingLimit
	}

	var entries []database.FoodTrackingEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

// DeleteTracking removes an entry by id.
func (s *TrackingService) DeleteTracking(ctx context.Context, entryID string) error {
	if strings.TrimSpace(entryID) == "" {
		return apperrors.NewValidationError("entry_id must not be empty")
	}

	result := s.db.WithContext(ctx).Where("id = ?", entryID).Delete(&database.FoodTrackingEntry{})
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("tracking entry").WithContext("entry_id", entryID)
	}
	return nil
}
