package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchbase/backend/internal/middleware"
	"github.com/launchbase/backend/internal/service"
	"github.com/launchbase/backend/internal/types"
)

// sessionCookieMaxAge matches the session token lifetime.
const sessionCookieMaxAge = 24 * 60 * 60

// AuthHandler handles registration, login and the email flows.
type AuthHandler struct {
	authService  service.IAuthService
	emailService service.IEmailService
}

func NewAuthHandler(authService service.IAuthService, emailService service.IEmailService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
	}
}

// RegisterRoutes registers the auth routes. The rate limiters are
// optional; without Redis the endpoints run unlimited.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, loginLimiter, registrationLimiter *middleware.RateLimiter) {
	auth := router.Group("/auth")
	{
		register := auth.Group("")
		if registrationLimiter != nil {
			register.Use(registrationLimiter.IPRateLimitMiddleware())
		}
		register.POST("/register", h.Register)

		login := auth.Group("")
		if loginLimiter != nil {
			login.Use(loginLimiter.IPRateLimitMiddleware())
		}
		login.POST("/login", h.Login)

		auth.POST("/logout", h.Logout)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", h.ResendVerification)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
			return
		}
		log.Printf("[AuthHandler] registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	// Verification email is best effort; the account exists either way
	// and the token can be re-sent.
	token, err := h.authService.GenerateVerificationToken(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("[AuthHandler] failed to generate verification token for %s: %v", user.ID, err)
	} else if err := h.emailService.SendVerificationEmail(user, token); err != nil {
		log.Printf("[AuthHandler] failed to send verification email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(&types.TokenClaims{
		UserID:          user.ID,
		IsEmailVerified: user.EmailVerified,
	})
	if err != nil {
		log.Printf("[AuthHandler] failed to generate session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.SetCookie(middleware.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"token":   token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req types.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.ValidateVerificationToken(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "verification link has expired"})
		case errors.Is(err, service.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification token"})
		default:
			log.Printf("[AuthHandler] email verification failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify email"})
		}
		return
	}

	if err := h.emailService.SendWelcomeEmail(user); err != nil {
		log.Printf("[AuthHandler] failed to send welcome email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "email verified successfully"})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req types.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || user.EmailVerified {
		// Same answer for unknown and already-verified accounts.
		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a verification email has been sent"})
		return
	}

	token, err := h.authService.GenerateVerificationToken(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("[AuthHandler] failed to generate verification token for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resend verification email"})
		return
	}
	if err := h.emailService.SendVerificationEmail(user, token); err != nil {
		log.Printf("[AuthHandler] failed to send verification email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a verification email has been sent"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req types.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.authService.GenerateResetToken(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			log.Printf("[AuthHandler] failed to generate reset token: %v", err)
		}
		// Same answer either way; no account enumeration.
		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset email has been sent"})
		return
	}

	if err := h.emailService.SendPasswordResetEmail(user, token); err != nil {
		log.Printf("[AuthHandler] failed to send reset email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset email has been sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req types.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "reset link has expired"})
		case errors.Is(err, service.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reset token"})
		default:
			log.Printf("[AuthHandler] password reset failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset successfully"})
}
