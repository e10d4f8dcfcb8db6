package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/config"
)

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DatabaseStatus checks database connectivity and lists the tables
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		respondMessage(c, http.StatusInternalServerError, "Database is not initialized")
		return
	}

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		respondMessage(c, http.StatusInternalServerError, "Failed to get database instance")
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		respondMessage(c, http.StatusInternalServerError, "Database connection failed")
		return
	}

	tables, err := db.WithContext(c.Request.Context()).Migrator().GetTables()
	if err != nil {
		respondMessage(c, http.StatusInternalServerError, "Failed to query tables")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Database connected",
		"tables":  tables,
	})
}
