package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/foodhealth/food-health-tracker/internal/config"
	"github.com/foodhealth/food-health-tracker/internal/food"
	"github.com/foodhealth/food-health-tracker/internal/logger"
)

// FoodTrackingEntry is a logged consumption. The product is stored as a
// snapshot, not a reference, so the entry keeps the product's data as it was
// at logging time.
type FoodTrackingEntry struct {
	ID          string       `gorm:"primaryKey" json:"id"`
	UserID      string       `gorm:"index" json:"user_id"`
	FoodProduct food.Product `gorm:"serializer:json" json:"food_product"`
	Quantity    float64      `json:"quantity"` // grams
	Timestamp   time.Time    `gorm:"index" json:"timestamp"`
}

// StatusCheck is an opaque liveness ping recorded by clients.
type StatusCheck struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&FoodTrackingEntry{}, &StatusCheck{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
