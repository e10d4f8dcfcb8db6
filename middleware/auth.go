package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/models"
)

const (
	currentUserKey  = "current_user"
	sessionTokenKey = "session_token"
)

// SessionResolver turns a session token into the signed-in user. A nil user
// with a nil error means the token is unknown, expired or orphaned.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

// LoadSession reads the session cookie and attaches the signed-in user to the
// request. Requests without a valid session continue anonymously.
func LoadSession(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		c.Set(sessionTokenKey, token)

		user, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Server error",
				"error":   err.Error(),
			})
			return
		}

		if user != nil {
			SetCurrentUser(c, user)
		}
		c.Next()
	}
}

// RequireAuth rejects requests that carry no signed-in user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetCurrentUser(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		c.Next()
	}
}

// SetCurrentUser stores the signed-in user in the Gin context
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// GetCurrentUser extracts the signed-in user from the Gin context
func GetCurrentUser(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, &AuthError{Code: "UNAUTHENTICATED", Message: "Not authenticated"}
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, &AuthError{Code: "INVALID_USER", Message: "Current user is not in the expected format"}
	}

	return user, nil
}

// GetSessionToken returns the session token presented with the request, if any
func GetSessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
