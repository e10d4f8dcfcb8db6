package services

import (
	"testing"

	"github.com/road-estimator/road-estimator-api/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func newTestAuthService(db *gorm.DB) *AuthService {
	users := NewGormUserStore(db)
	return NewAuthService(AuthServiceConfig{
		Users:    users,
		Sessions: NewGormSessionStore(db),
		Verifier: NewBcryptVerifier(bcrypt.MinCost),
	})
}
