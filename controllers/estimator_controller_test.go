package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func estimatorRouter(user *models.User) *gin.Engine {
	router := setupTestRouter()
	group := router.Group("/api/estimators", mockAuthMiddleware(user))
	group.GET("", ListEstimators)
	group.POST("", CreateEstimator)
	group.GET("/:id", GetEstimator)
	group.PUT("/:id", UpdateEstimator)
	group.DELETE("/:id", DeleteEstimator)
	return router
}

func validEstimatorBody() map[string]any {
	return map[string]any{
		"projectName":   "Main Street",
		"clientName":    "City Council",
		"roadType":      "Urban",
		"roadLength":    2.5,
		"roadWidth":     8,
		"materials":     map[string]any{"asphalt": 120},
		"laborCost":     1000,
		"equipmentCost": 500,
		"totalCost":     9000,
		"estimatedTime": 14,
		"notes":         "first pass",
	}
}

func TestCreateEstimator(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "Ada", "ada@example.com")
	router := estimatorRouter(owner)

	w := performRequest(router, http.MethodPost, "/api/estimators", validEstimatorBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeObject(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, owner.ID, body["user"])
	assert.Equal(t, "Main Street", body["projectName"])
	assert.Equal(t, 2.5, body["roadLength"])
	assert.Equal(t, map[string]any{"asphalt": float64(120)}, body["materials"])
	assert.NotEmpty(t, body["createdAt"])
}

func TestCreateEstimatorDefaults(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "Ada", "ada@example.com")
	router := estimatorRouter(owner)

	w := performRequest(router, http.MethodPost, "/api/estimators", map[string]any{
		"projectName":   "Minimal",
		"roadLength":    1,
		"roadWidth":     1,
		"totalCost":     1,
		"estimatedTime": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeObject(t, w)
	assert.Equal(t, float64(0), body["laborCost"])
	assert.Equal(t, float64(0), body["equipmentCost"])
	assert.Equal(t, map[string]any{}, body["materials"])
}

func TestCreateEstimatorValidation(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "Ada", "ada@example.com")
	router := estimatorRouter(owner)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing project name", func(b map[string]any) { delete(b, "projectName") }},
		{"missing road length", func(b map[string]any) { delete(b, "roadLength") }},
		{"null total cost", func(b map[string]any) { b["totalCost"] = nil }},
		{"non-numeric road width", func(b map[string]any) { b["roadWidth"] = "wide" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validEstimatorBody()
			tt.mutate(body)

			w := performRequest(router, http.MethodPost, "/api/estimators", body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			resp := decodeObject(t, w)
			assert.Equal(t, "Server error", resp["message"])
			assert.NotEmpty(t, resp["error"])
		})
	}

	var count int64
	db.Model(&models.Estimator{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateEstimatorInvalidJSON(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "Ada", "ada@example.com")

	w := performRequest(estimatorRouter(owner), http.MethodPost, "/api/estimators", "{not json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEstimatorRequiresAuthentication(t *testing.T) {
	setupTestDB(t)
	router := estimatorRouter(nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/estimators"},
		{http.MethodPost, "/api/estimators"},
		{http.MethodGet, "/api/estimators/abc"},
		{http.MethodPut, "/api/estimators/abc"},
		{http.MethodDelete, "/api/estimators/abc"},
	} {
		w := performRequest(router, tc.method, tc.path, map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"message":"Not authenticated"}`, w.Body.String())
	}
}

func TestListEstimatorsOnlyReturnsOwnRecords(t *testing.T) {
	db := setupTestDB(t)
	ada := createTestUser(t, db, "Ada", "ada@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	require.NoError(t, db.Create(&models.Estimator{UserID: ada.ID, ProjectName: "A1"}).Error)
	require.NoError(t, db.Create(&models.Estimator{UserID: ada.ID, ProjectName: "A2"}).Error)
	require.NoError(t, db.Create(&models.Estimator{UserID: bob.ID, ProjectName: "B1"}).Error)

	router := estimatorRouter(ada)
	first := performRequest(router, http.MethodGet, "/api/estimators", nil)
	require.Equal(t, http.StatusOK, first.Code)

	list := decodeList(t, first)
	require.Len(t, list, 2)
	for _, item := range list {
		assert.Equal(t, ada.ID, item["user"])
	}

	second := performRequest(router, http.MethodGet, "/api/estimators", nil)
	assert.ElementsMatch(t, list, decodeList(t, second), "listing twice without writes returns the same set")
}

func TestListEstimatorsEmpty(t *testing.T) {
	db := setupTestDB(t)
	ada := createTestUser(t, db, "Ada", "ada@example.com")

	w := performRequest(estimatorRouter(ada), http.MethodGet, "/api/estimators", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetEstimator(t *testing.T) {
	db := setupTestDB(t)
	ada := createTestUser(t, db, "Ada", "ada@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	estimator := models.Estimator{UserID: ada.ID, ProjectName: "Main Street"}
	require.NoError(t, db.Create(&estimator).Error)

	w := performRequest(estimatorRouter(ada), http.MethodGet, "/api/estimators/"+estimator.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Main Street", decodeObject(t, w)["projectName"])

	w = performRequest(estimatorRouter(bob), http.MethodGet, "/api/estimators/"+estimator.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"User not authorized"}`, w.Body.String())

	w = performRequest(estimatorRouter(ada), http.MethodGet, "/api/estimators/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Estimator data not found"}`, w.Body.String())
}

func TestUpdateEstimatorTruthyMerge(t *testing.T) {
	db := setupTestDB(t)
	ada := createTestUser(t, db, "Ada", "ada@example.com")

	estimator := models.Estimator{
		UserID: ada.ID, ProjectName: "Main Street", ClientName: "Council",
		RoadLength: 2, RoadWidth: 8, LaborCost: 100, TotalCost: 900, EstimatedTime: 3, Notes: "old",
	}
	require.NoError(t, db.Create(&estimator).Error)
	created := estimator.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	w := performRequest(estimatorRouter(ada), http.MethodPut, "/api/estimators/"+estimator.ID, map[string]any{
		"notes":      "x",
		"clientName": "",
		"laborCost":  0,
		"roadWidth":  nil,
		"totalCost":  1200,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeObject(t, w)
	assert.Equal(t, "x", body["notes"])
	assert.Equal(t, "Council", body["clientName"], "empty string leaves the value unchanged")
	assert.Equal(t, float64(100), body["laborCost"], "zero leaves the value unchanged")
	assert.Equal(t, float64(8), body["roadWidth"], "null leaves the value unchanged")
	assert.Equal(t, float64(1200), body["totalCost"])

	var reloaded models.Estimator
	require.NoError(t, db.First(&reloaded, "id = ?", estimator.ID).Error)
	assert.Equal(t, "x", reloaded.Notes)
	assert.True(t, reloaded.UpdatedAt.After(created), "updatedAt must move forward")
}

func TestUpdateEstimatorOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	ada := createTestUser(t, db, "Ada", "ada@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	estimator := models.Estimator{UserID: ada.ID, ProjectName: "Main Street"}
	require.NoError(t, db.Create(&estimator).Error)

	w := performRequest(estimatorRouter(bob), http.MethodPut, "/api/estimators/"+estimator.ID, map[string]any{"notes": "hijack"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Estimator data not found"}`, w.Body.String())

	var reloaded models.Estimator
	require.NoError(t, db.First(&reloaded, "id = ?", estimator.ID).Error)
	assert.Empty(t, reloaded.Notes)
}

func TestDeleteEstimator(t *testing.T) {
	db := setupTestDB(t)
	ada := createTestUser(t, db, "Ada", "ada@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	estimator := models.Estimator{UserID: ada.ID, ProjectName: "Main Street"}
	require.NoError(t, db.Create(&estimator).Error)
	path := "/api/estimators/" + estimator.ID

	w := performRequest(estimatorRouter(bob), http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(estimatorRouter(ada), http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Estimator data deleted successfully"}`, w.Body.String())

	w = performRequest(estimatorRouter(ada), http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(estimatorRouter(ada), http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
