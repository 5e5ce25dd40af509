package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/launchbase/backend/config"
	"github.com/launchbase/backend/internal/database"
	"github.com/launchbase/backend/internal/middleware"
	"github.com/launchbase/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Launchbase API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService service.IAuthService, cfg *config.Config) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	// Redis is only used for rate limiting; run without it if unavailable.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
		redisClient = nil
	}

	var loginLimiter *middleware.RateLimiter
	var registrationLimiter *middleware.RateLimiter
	if redisClient != nil {
		loginLimiter = middleware.NewLoginRateLimiter(redisClient)
		registrationLimiter = middleware.NewRegistrationRateLimiter(redisClient)
	}

	emailService := service.NewEmailService(cfg)
	profileService := service.NewProfileService(db)

	var avatarService service.IAvatarService
	if s3Config, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("Warning: avatar storage unavailable: %v", err)
	} else {
		avatarService = service.NewAvatarService(s3Config)
	}

	authHandler := NewAuthHandler(authService, emailService)
	profileHandler := NewProfileHandler(profileService, avatarService)
	dashboardHandler := NewDashboardHandler(authService, profileService)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, loginLimiter, registrationLimiter)

	// Profile routes require a session but not a verified email, so a
	// fresh account can fill in its profile before clicking the link.
	profileGroup := v1.Group("")
	profileGroup.Use(middleware.AuthMiddleware(authService))
	profileHandler.RegisterRoutes(profileGroup)

	// Dashboard requires a verified email.
	dashboardGroup := v1.Group("")
	dashboardGroup.Use(middleware.AuthMiddleware(authService))
	dashboardGroup.Use(middleware.RequireEmailVerification(db))
	dashboardHandler.RegisterRoutes(dashboardGroup)

	// The setup endpoint is mounted everywhere except production; its
	// guard also re-checks the environment on every call.
	if config.GetEnvironment() != config.Production {
		sqlDB, err := db.DB()
		if err != nil {
			log.Printf("Warning: setup endpoint unavailable: %v", err)
		} else {
			setupHandler := NewSetupHandler(sqlDB, cfg.SetupToken, config.GetEnvironment())
			setupHandler.RegisterRoutes(v1)
		}
	}
}
