package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/road-estimator/road-estimator-api/controllers"
	"github.com/road-estimator/road-estimator-api/middleware"
)

// Setup builds the Gin engine with every route the API serves
func Setup(deps *Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Invalid TRUSTED_PROXIES, trusting none: %v", err)
		_ = router.SetTrustedProxies(nil)
	}

	origin := cfg.FrontendOrigin
	if origin == "" {
		origin = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.LoadSession(deps.Auth, cfg.SessionCookieName))

	router.GET("/health", controllers.HealthCheck)
	router.GET("/database/status", controllers.DatabaseStatus)

	authController := controllers.NewAuthController(deps.Auth, deps.IdentityProvider, cfg)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/current-user", authController.CurrentUser)
		auth.GET("/logout", authController.Logout)
		auth.GET("/google", authController.GoogleLogin)
		auth.GET("/google/callback", authController.GoogleCallback)
		auth.GET("/google/failure", authController.GoogleFailure)
	}

	api := router.Group("/api")
	api.GET("/current_user", authController.APICurrentUser)

	protected := api.Group("", middleware.RequireAuth())
	{
		estimators := protected.Group("/estimators")
		estimators.GET("", controllers.ListEstimators)
		estimators.POST("", controllers.CreateEstimator)
		estimators.GET("/:id", controllers.GetEstimator)
		estimators.PUT("/:id", controllers.UpdateEstimator)
		estimators.DELETE("/:id", controllers.DeleteEstimator)

		reports := protected.Group("/reports")
		reports.GET("", controllers.ListReports)
		reports.POST("", controllers.CreateReport)
		reports.GET("/:id", controllers.GetReport)
		reports.PUT("/:id", controllers.UpdateReport)
		reports.DELETE("/:id", controllers.DeleteReport)
		reports.POST("/:id/export", controllers.ExportReport)

		estimates := protected.Group("/estimates")
		estimates.POST("", controllers.CreateEstimate)
		estimates.GET("", controllers.ListEstimates)
		estimates.GET("/:id", controllers.GetEstimate)
	}

	return router
}
