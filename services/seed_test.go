package services

import (
	"context"
	"testing"

	"github.com/road-estimator/road-estimator-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSampleData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, _, err := SeedSampleData(ctx, db, "")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := models.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.Create(&user).Error)

	estimator, report, err := SeedSampleData(ctx, db, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, estimator.UserID)
	assert.Equal(t, user.ID, report.UserID)
	assert.Equal(t, models.StatusDraft, report.Status)
	assert.Equal(t, float64(235000), estimator.TotalCost)

	var count int64
	db.Model(&models.Estimator{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	_, _, err = SeedSampleData(ctx, db, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
