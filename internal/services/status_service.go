package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodhealth/food-health-tracker/internal/apperrors"
	"github.com/foodhealth/food-health-tracker/internal/database"
)

const maxStatusChecks = 1000

// StatusService records opaque client status checks.
type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

func (s *StatusService) CreateStatusCheck(ctx context.Context, clientName string) (*database.StatusCheck, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, apperrors.NewValidationError("client_name must not be empty")
	}

	check := &database.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(check).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return check, nil
}

func (s *StatusService) ListStatusChecks(ctx context.Context) ([]database.StatusCheck, error) {
	var checks []database.StatusCheck
	if err := s.db.WithContext(ctx).Limit(maxStatusChecks).Find(&checks).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return checks, nil
}
