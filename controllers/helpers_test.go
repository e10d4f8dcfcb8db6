package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/middleware"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/stretchr/testify/require"
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

	config.SetDB(db)
	t.Cleanup(func() { config.SetDB(nil) })
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware signs the request in as user; a nil user leaves it anonymous
func mockAuthMiddleware(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			middleware.SetCurrentUser(c, user)
		}
		c.Next()
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	user := &models.User{Name: name, Email: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func performRequest(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
