package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/middleware"
	"github.com/road-estimator/road-estimator-api/models"
	"github.com/road-estimator/road-estimator-api/services"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
	googleFailureURL = "/auth/google/failure"
)

// RegisterRequest represents the request body for POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthController serves the /auth routes. provider is nil when Google
// sign-in is not configured.
type AuthController struct {
	auth     *services.AuthService
	provider services.IdentityProvider
	state    *services.StateSigner
	cfg      *config.Config
}

// NewAuthController creates the auth controller
func NewAuthController(auth *services.AuthService, provider services.IdentityProvider, cfg *config.Config) *AuthController {
	return &AuthController{
		auth:     auth,
		provider: provider,
		state:    services.NewStateSigner(cfg.SessionSecret, oauthStateTTL),
		cfg:      cfg,
	}
}

// Register handles POST /auth/register - creates a local account and signs it in
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondServerError(c, err)
		return
	}

	user, err := ac.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		respondMessage(c, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		respondServerError(c, err)
		return
	}

	if err := ac.startSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error logging in after registration",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.Summary()})
}

// Login handles POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondServerError(c, err)
		return
	}

	user, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		respondMessage(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondServerError(c, err)
		return
	}

	if err := ac.startSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error logging in",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Summary()})
}

// CurrentUser handles GET /auth/current-user
func (ac *AuthController) CurrentUser(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Summary()})
}

// Logout handles GET /auth/logout - ends the session and clears the cookie
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.auth.EndSession(c.Request.Context(), middleware.GetSessionToken(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error logging out",
			"error":   err.Error(),
		})
		return
	}

	ac.clearCookie(c, ac.cfg.SessionCookieName, "/")
	respondMessage(c, http.StatusOK, "Logged out successfully")
}

// APICurrentUser handles GET /api/current_user. Anonymous callers get an
// empty 200 response.
func (ac *AuthController) APICurrentUser(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GoogleLogin handles GET /auth/google - redirects to Google's consent page
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	if ac.provider == nil {
		respondMessage(c, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	nonce, err := services.NewNonce()
	if err != nil {
		respondServerError(c, err)
		return
	}
	state, err := ac.state.Sign(nonce)
	if err != nil {
		respondServerError(c, err)
		return
	}

	ac.setCookie(c, oauthStateCookie, nonce, "/auth/google", oauthStateTTL)
	c.Redirect(http.StatusTemporaryRedirect, ac.provider.AuthCodeURL(state))
}

// GoogleCallback handles GET /auth/google/callback. Every failure sends the
// browser to the failure route.
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	if ac.provider == nil {
		c.Redirect(http.StatusFound, googleFailureURL)
		return
	}

	if reason := c.Query("error"); reason != "" {
		ac.googleFailed(c, errors.New(reason))
		return
	}

	nonce, _ := c.Cookie(oauthStateCookie)
	ac.clearCookie(c, oauthStateCookie, "/auth/google")
	if err := ac.state.Verify(c.Query("state"), nonce); err != nil {
		ac.googleFailed(c, err)
		return
	}

	identity, err := ac.provider.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		ac.googleFailed(c, err)
		return
	}

	user, err := ac.auth.LoginFederated(c.Request.Context(), identity)
	if err != nil {
		ac.googleFailed(c, err)
		return
	}

	if err := ac.startSession(c, user); err != nil {
		ac.googleFailed(c, err)
		return
	}

	c.Redirect(http.StatusFound, ac.cfg.FrontendOrigin+"/project-details")
}

// GoogleFailure handles GET /auth/google/failure
func (ac *AuthController) GoogleFailure(c *gin.Context) {
	c.Redirect(http.StatusFound, ac.cfg.FrontendOrigin+"/login")
}

func (ac *AuthController) googleFailed(c *gin.Context, err error) {
	log.Printf("Google sign-in failed: %v", err)
	c.Redirect(http.StatusFound, googleFailureURL)
}

// startSession replaces any session the request arrived with by a new one for user.
func (ac *AuthController) startSession(c *gin.Context, user *models.User) error {
	if previous := middleware.GetSessionToken(c); previous != "" {
		if err := ac.auth.EndSession(c.Request.Context(), previous); err != nil {
			log.Printf("warning: failed to end previous session: %v", err)
		}
	}

	token, err := ac.auth.StartSession(c.Request.Context(), user)
	if err != nil {
		return err
	}
	ac.setCookie(c, ac.cfg.SessionCookieName, token, "/", ac.auth.SessionTTL())
	middleware.SetCurrentUser(c, user)
	return nil
}

func (ac *AuthController) setCookie(c *gin.Context, name, value, path string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   ac.cfg.CookieSecure(),
		SameSite: ac.cfg.CookieSameSite(),
	})
}

func (ac *AuthController) clearCookie(c *gin.Context, name, path string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   ac.cfg.CookieSecure(),
		SameSite: ac.cfg.CookieSameSite(),
	})
}
