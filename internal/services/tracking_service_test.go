package services

import (
	"context"
	"testing"
	"time"

	"github.com/foodhealth/food-health-tracker/internal/apperrors"
	"github.com/foodhealth/food-health-tracker/internal/food"
)

// The validation paths run before any database work, so a nil-db service is
// enough to exercise them.

func TestTrackFoodValidation(t *testing.T) {
	svc := NewTrackingService(nil)

	tests := []struct {
		name     string
		userID   string
		quantity float64
	}{
		{"empty user id", "", 100},
		{"blank user id", "   ", 100},
		{"negative quantity", "user-1", -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.TrackFood(context.Background(), tc.userID, food.Product{ID: "1"}, tc.quantity)
			if !apperrors.IsValidation(err) {
				t.Errorf("err = %v; want a validation error", err)
			}
		})
	}
}

func TestBuildTrackingEntryDefaultsQuantity(t *testing.T) {
	entry, err := buildTrackingEntry("user-1", food.Product{ID: "1"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Quantity != DefaultQuantityGrams {
		t.Errorf("Quantity = %v; want default %v", entry.Quantity, DefaultQuantityGrams)
	}
}

func TestBuildTrackingEntryKeepsExplicitQuantity(t *testing.T) {
	entry, err := buildTrackingEntry("user-1", food.Product{ID: "1"}, 37.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Quantity != 37.5 {
		t.Errorf("Quantity = %v; want 37.5", entry.Quantity)
	}
}

// A snapshot arriving with a rating that disagrees with its score is repaired
// before it is stored.
func TestBuildTrackingEntryRepairsRating(t *testing.T) {
	product := food.Product{
		ID:           "1",
		HealthScore:  72,
		HealthRating: food.RatingVeryPoor,
	}

	entry, err := buildTrackingEntry("user-1", product, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.FoodProduct.HealthRating != food.RatingGood {
		t.Errorf("HealthRating = %q; want %q derived from score 72", entry.FoodProduct.HealthRating, food.RatingGood)
	}
}

func TestBuildTrackingEntryIdentity(t *testing.T) {
	entry, err := buildTrackingEntry("user-1", food.Product{ID: "1"}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry must get a generated id")
	}
	if entry.UserID != "user-1" {
		t.Errorf("UserID = %q; want user-1", entry.UserID)
	}
	if entry.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp location = %v; want UTC", entry.Timestamp.Location())
	}
}

func TestGetUserTrackingValidation(t *testing.T) {
	svc := NewTrackingService(nil)
	if _, err := svc.GetUserTracking(context.Background(), "  ", 10); !apperrors.IsValidation(err) {
		t.Errorf("err = %v; want a validation error", err)
	}
}

func TestDeleteTrackingValidation(t *testing.T) {
	svc := NewTrackingService(nil)
	if err := svc.DeleteTracking(context.Background(), ""); !apperrors.IsValidation(err) {
		t.Errorf("err = %v; want a validation error", err)
	}
}
