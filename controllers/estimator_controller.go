package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/road-estimator/road-estimator-api/utils"
	"gorm.io/gorm"
)

const (
	estimatorNotFound = "Estimator data not found"
	userNotAuthorized = "User not authorized"
)

func estimatorFields(e *models.Estimator) []field {
	return []field{
		{"projectName", stringField("projectName", &e.ProjectName)},
		{"clientName", stringField("clientName", &e.ClientName)},
		{"roadType", stringField("roadType", &e.RoadType)},
		{"roadLength", numberField("roadLength", &e.RoadLength)},
		{"roadWidth", numberField("roadWidth", &e.RoadWidth)},
		{"materials", payloadField(&e.Materials)},
		{"laborCost", numberField("laborCost", &e.LaborCost)},
		{"equipmentCost", numberField("equipmentCost", &e.EquipmentCost)},
		{"totalCost", numberField("totalCost", &e.TotalCost)},
		{"estimatedTime", numberField("estimatedTime", &e.EstimatedTime)},
		{"notes", stringField("notes", &e.Notes)},
	}
}

// ListEstimators handles GET /api/estimators - the signed-in user's estimators
func ListEstimators(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	estimators := []models.Estimator{}
	if err := config.GetDB().WithContext(c.Request.Context()).
		Where("user_id = ?", user.ID).
		Find(&estimators).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimators)
}

// GetEstimator handles GET /api/estimators/:id. A record owned by someone
// else is reported as 401 rather than 404.
func GetEstimator(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var estimator models.Estimator
	err := config.GetDB().WithContext(c.Request.Context()).First(&estimator, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondMessage(c, http.StatusNotFound, estimatorNotFound)
		return
	}
	if err != nil {
		respondServerError(c, err)
		return
	}

	if estimator.UserID != user.ID {
		respondMessage(c, http.StatusUnauthorized, userNotAuthorized)
		return
	}

	c.JSON(http.StatusOK, estimator)
}

// CreateEstimator handles POST /api/estimators
func CreateEstimator(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondServerError(c, err)
		return
	}

	estimator := models.Estimator{UserID: user.ID}
	if err := requireKeys(body, "Estimator", "roadLength", "roadWidth", "totalCost", "estimatedTime"); err != nil {
		respondServerError(c, err)
		return
	}
	if err := applyNonNull(body, estimatorFields(&estimator)); err != nil {
		respondServerError(c, err)
		return
	}

	if err := config.GetDB().WithContext(c.Request.Context()).Create(&estimator).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, estimator)
}

// UpdateEstimator handles PUT /api/estimators/:id. Only truthy values are
// applied: "", 0, false and null leave the stored field unchanged.
func UpdateEstimator(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondServerError(c, err)
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())
	var estimator models.Estimator
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&estimator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondMessage(c, http.StatusNotFound, estimatorNotFound)
		return
	}
	if err != nil {
		respondServerError(c, err)
		return
	}

	if err := applyWhen(body, estimatorFields(&estimator), utils.Truthy); err != nil {
		respondServerError(c, err)
		return
	}

	if err := db.Save(&estimator).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimator)
}

// DeleteEstimator handles DELETE /api/estimators/:id
func DeleteEstimator(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	result := config.GetDB().WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Delete(&models.Estimator{})
	if result.Error != nil {
		respondServerError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(c, http.StatusNotFound, estimatorNotFound)
		return
	}

	respondMessage(c, http.StatusOK, "Estimator data deleted successfully")
}
