package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/models"
	"gorm.io/gorm"
)

func estimateFields(e *models.Estimate) []field {
	return []field{
		{"title", stringField("title", &e.Title)},
		{"projectName", stringField("projectName", &e.ProjectName)},
		{"estimatedCost", numberField("estimatedCost", &e.EstimatedCost)},
		{"estimatedTime", numberField("estimatedTime", &e.EstimatedTime)},
		{"details", payloadField(&e.Details)},
	}
}

// CreateEstimate handles POST /api/estimates. New estimates always start as drafts.
func CreateEstimate(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondServerError(c, err)
		return
	}

	estimate := models.Estimate{UserID: user.ID, Status: models.StatusDraft}
	if err := requireKeys(body, "Estimate", "estimatedCost", "estimatedTime"); err != nil {
		respondServerError(c, err)
		return
	}
	if err := applyNonNull(body, estimateFields(&estimate)); err != nil {
		respondServerError(c, err)
		return
	}

	if err := config.GetDB().WithContext(c.Request.Context()).Create(&estimate).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, estimate)
}

// ListEstimates handles GET /api/estimates - newest first
func ListEstimates(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	estimates := []models.Estimate{}
	if err := config.GetDB().WithContext(c.Request.Context()).
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&estimates).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimates)
}

// GetEstimate handles GET /api/estimates/:id. Errors use the {msg} body.
func GetEstimate(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var estimate models.Estimate
	err := config.GetDB().WithContext(c.Request.Context()).First(&estimate, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Estimate not found"})
		return
	}
	if err != nil {
		respondServerError(c, err)
		return
	}

	if estimate.UserID != user.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": userNotAuthorized})
		return
	}

	c.JSON(http.StatusOK, estimate)
}
