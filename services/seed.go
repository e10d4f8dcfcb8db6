package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/road-estimator/road-estimator-api/models"
	"gorm.io/gorm"
)

// SeedSampleData creates one sample estimator and one draft report for the
// user with the given email, or for the oldest user when email is empty.
func SeedSampleData(ctx context.Context, db *gorm.DB, email string) (*models.Estimator, *models.Report, error) {
	var user models.User
	query := db.WithContext(ctx).Order("created_at ASC")
	if email != "" {
		query = query.Where("email = ?", email)
	}
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find seed user: %w", err)
	}

	estimator := models.Estimator{
		UserID:      user.ID,
		ProjectName: "Test Highway Project",
		ClientName:  "Test Client",
		RoadType:    "Highway",
		RoadLength:  10,
		RoadWidth:   15,
		Materials: []any{
			map[string]any{"name": "Asphalt", "quantity": 1500, "unitCost": 120},
			map[string]any{"name": "Gravel", "quantity": 800, "unitCost": 50},
		},
		LaborCost:     25000,
		EquipmentCost: 15000,
		TotalCost:     235000,
		EstimatedTime: 90,
		Notes:         "This is a test estimator entry",
	}

	report := models.Report{
		UserID:        user.ID,
		Title:         "Test Project Report",
		Description:   "This is a test report for the highway project",
		ProjectName:   "Test Highway Project",
		EstimatedCost: 235000,
		EstimatedTime: 90,
		Status:        models.StatusDraft,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&estimator).Error; err != nil {
			return fmt.Errorf("failed to create sample estimator: %w", err)
		}
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("failed to create sample report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &estimator, &report, nil
}
