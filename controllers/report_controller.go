package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/road-estimator/road-estimator-api/services"
	"github.com/road-estimator/road-estimator-api/utils"
	"gorm.io/gorm"
)

const reportNotFound = "Report not found"

// reportTextFields overwrite whenever their key is present, null included.
func reportTextFields(r *models.Report) []field {
	return []field{
		{"title", stringField("title", &r.Title)},
		{"description", stringField("description", &r.Description)},
		{"projectName", stringField("projectName", &r.ProjectName)},
		{"status", statusField("status", &r.Status)},
		{"projectDetails", jsonField("projectDetails", &r.ProjectDetails)},
		{"clientDetails", jsonField("clientDetails", &r.ClientDetails)},
		{"items", jsonField("items", &r.Items)},
		{"searchResults", jsonField("searchResults", &r.SearchResults)},
		{"inputData", jsonField("inputData", &r.InputData)},
		{"editableRates", jsonField("editableRates", &r.EditableRates)},
		{"rateSelection", jsonField("rateSelection", &r.RateSelection)},
		{"grandTotalInWords", nullableStringField("grandTotalInWords", &r.GrandTotalInWords)},
	}
}

// reportNumberFields overwrite only when given a JSON number on update.
func reportNumberFields(r *models.Report) []field {
	return []field{
		{"estimatedCost", numberField("estimatedCost", &r.EstimatedCost)},
		{"estimatedTime", numberField("estimatedTime", &r.EstimatedTime)},
		{"grandTotalCost", nullableNumberField("grandTotalCost", &r.GrandTotalCost)},
	}
}

// ListReports handles GET /api/reports - the signed-in user's reports
func ListReports(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	reports := []models.Report{}
	if err := config.GetDB().WithContext(c.Request.Context()).
		Where("user_id = ?", user.ID).
		Find(&reports).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReport handles GET /api/reports/:id
func GetReport(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var report models.Report
	err := config.GetDB().WithContext(c.Request.Context()).First(&report, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondMessage(c, http.StatusNotFound, reportNotFound)
		return
	}
	if err != nil {
		respondServerError(c, err)
		return
	}

	if report.UserID != user.ID {
		respondMessage(c, http.StatusUnauthorized, userNotAuthorized)
		return
	}

	c.JSON(http.StatusOK, report)
}

// CreateReport handles POST /api/reports. Status defaults to draft.
func CreateReport(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondServerError(c, err)
		return
	}

	report := models.Report{UserID: user.ID}
	if err := requireKeys(body, "Report", "estimatedCost", "estimatedTime"); err != nil {
		respondServerError(c, err)
		return
	}
	fields := append(reportTextFields(&report), reportNumberFields(&report)...)
	if err := applyNonNull(body, fields); err != nil {
		respondServerError(c, err)
		return
	}
	if report.Status == "" {
		report.Status = models.StatusDraft
	}

	if err := config.GetDB().WithContext(c.Request.Context()).Create(&report).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// UpdateReport handles PUT /api/reports/:id. Text and payload fields are
// replaced whenever present, numeric fields only by a JSON number.
func UpdateReport(c *gin.Context) {
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
	report, ok := findOwnedReport(c, db, user.ID)
	if !ok {
		return
	}

	present := func(any) bool { return true }
	if err := applyWhen(body, reportTextFields(report), present); err != nil {
		respondServerError(c, err)
		return
	}
	if err := applyWhen(body, reportNumberFields(report), utils.IsNumber); err != nil {
		respondServerError(c, err)
		return
	}

	if err := db.Save(report).Error; err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DeleteReport handles DELETE /api/reports/:id
func DeleteReport(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	result := config.GetDB().WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Delete(&models.Report{})
	if result.Error != nil {
		respondServerError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondMessage(c, http.StatusNotFound, reportNotFound)
		return
	}

	if archive := services.GetReportArchive(); archive != nil {
		if err := archive.Purge(c.Request.Context(), user.ID, c.Param("id")); err != nil {
			log.Printf("warning: failed to remove exports of report %s: %v", c.Param("id"), err)
		}
	}

	respondMessage(c, http.StatusOK, "Report deleted successfully")
}

// ExportReport handles POST /api/reports/:id/export - archives a JSON
// snapshot of the report and returns a temporary download link
func ExportReport(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	archive := services.GetReportArchive()
	if archive == nil {
		respondMessage(c, http.StatusServiceUnavailable, "Report export is not configured")
		return
	}

	report, ok := findOwnedReport(c, config.GetDB().WithContext(c.Request.Context()), user.ID)
	if !ok {
		return
	}

	export, err := archive.Export(c.Request.Context(), report)
	if err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, export)
}

// findOwnedReport loads the :id report owned by userID, writing a 404 or 500
// when it cannot.
func findOwnedReport(c *gin.Context, db *gorm.DB, userID string) (*models.Report, bool) {
	var report models.Report
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondMessage(c, http.StatusNotFound, reportNotFound)
		return nil, false
	}
	if err != nil {
		respondServerError(c, err)
		return nil, false
	}
	return &report, true
}
