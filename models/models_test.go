package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestUserCreateAssignsID(t *testing.T) {
	db := setupTestDB(t)

	user := User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.Create(&user).Error)

	assert.Len(t, user.ID, 36)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserRequiresEmailAndName(t *testing.T) {
	db := setupTestDB(t)

	err := db.Create(&User{Name: "Ada"}).Error
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)

	err = db.Create(&User{Email: "ada@example.com"}).Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

func TestEstimatorDefaultsAndValidation(t *testing.T) {
	db := setupTestDB(t)

	estimator := Estimator{UserID: "owner", ProjectName: "  Main Street  ", RoadLength: 10, RoadWidth: 8, TotalCost: 100, EstimatedTime: 5}
	require.NoError(t, db.Create(&estimator).Error)

	assert.Equal(t, "Main Street", estimator.ProjectName)
	assert.Equal(t, map[string]any{}, estimator.Materials)

	var loaded Estimator
	require.NoError(t, db.First(&loaded, "id = ?", estimator.ID).Error)
	assert.Equal(t, map[string]any{}, loaded.Materials)
	assert.Equal(t, "owner", loaded.UserID)

	err := db.Create(&Estimator{UserID: "owner", ProjectName: "   "}).Error
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "projectName", verr.Field)
}

func TestEstimatorMaterialsRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	materials := []any{map[string]any{"name": "Asphalt", "quantity": float64(1500)}}
	estimator := Estimator{UserID: "owner", ProjectName: "Highway", Materials: materials}
	require.NoError(t, db.Create(&estimator).Error)

	var loaded Estimator
	require.NoError(t, db.First(&loaded, "id = ?", estimator.ID).Error)
	assert.Equal(t, materials, loaded.Materials)
}

func TestReportStatus(t *testing.T) {
	db := setupTestDB(t)

	report := Report{UserID: "owner", Title: "T", Description: "D", ProjectName: "P"}
	require.NoError(t, db.Create(&report).Error)
	assert.Equal(t, StatusDraft, report.Status)

	report.Status = "archived"
	err := db.Save(&report).Error
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Field)
	assert.Equal(t, "Report validation failed: status: `archived` is not a valid status", verr.Error())
}

func TestReportUpdateStillValidates(t *testing.T) {
	db := setupTestDB(t)

	report := Report{UserID: "owner", Title: "T", Description: "D", ProjectName: "P"}
	require.NoError(t, db.Create(&report).Error)

	report.Title = ""
	err := db.Save(&report).Error
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)
}

func TestReportPayloadColumns(t *testing.T) {
	db := setupTestDB(t)

	report := Report{UserID: "owner", Title: "T", Description: "D", ProjectName: "P"}
	require.NoError(t, db.Create(&report).Error)

	report.Title = "Renamed"
	report.Items = datatypes.JSON(`[{"name":"Asphalt"}]`)
	require.NoError(t, db.Save(&report).Error)

	var loaded Report
	require.NoError(t, db.First(&loaded, "id = ?", report.ID).Error)
	assert.Equal(t, "Renamed", loaded.Title)
	assert.JSONEq(t, `[{"name":"Asphalt"}]`, string(loaded.Items))
	assert.Nil(t, loaded.ClientDetails)

	loaded.Items = nil
	require.NoError(t, db.Save(&loaded).Error)
	require.NoError(t, db.First(&loaded, "id = ?", report.ID).Error)
	assert.Nil(t, loaded.Items)
}

func TestEstimateRequiresDetails(t *testing.T) {
	db := setupTestDB(t)

	err := db.Create(&Estimate{UserID: "owner", Title: "T", ProjectName: "P"}).Error
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "details", verr.Field)

	estimate := Estimate{UserID: "owner", Title: "T", ProjectName: "P", Details: map[string]any{"lanes": float64(2)}}
	require.NoError(t, db.Create(&estimate).Error)
	assert.Equal(t, StatusDraft, estimate.Status)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSubmitted, StatusApproved, StatusRejected} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("DRAFT").Valid())
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	session := Session{ExpiresAt: now}

	assert.True(t, session.Expired(now))
	assert.True(t, session.Expired(now.Add(time.Second)))
	assert.False(t, session.Expired(now.Add(-time.Second)))
}

func TestSoftDeletedRecordsAreHidden(t *testing.T) {
	db := setupTestDB(t)

	estimator := Estimator{UserID: "owner", ProjectName: "Highway"}
	require.NoError(t, db.Create(&estimator).Error)
	require.NoError(t, db.Delete(&estimator).Error)

	err := db.First(&Estimator{}, "id = ?", estimator.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
