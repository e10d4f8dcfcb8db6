package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/middleware"
	"github.com/road-estimator/road-estimator-api/models"
)

// respondServerError writes the 500 body used by every handler, passing the
// underlying error message through.
func respondServerError(c *gin.Context, err error) {
	log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Server error",
		"error":   err.Error(),
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// currentUser returns the signed-in user or writes a 401 and returns nil.
func currentUser(c *gin.Context) *models.User {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondMessage(c, http.StatusUnauthorized, "Not authenticated")
		return nil
	}
	return user
}
