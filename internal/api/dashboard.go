package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/launchbase/backend/internal/service"
)

// DashboardStats is the summary shown on the signed-in landing page.
type DashboardStats struct {
	MemberSince     time.Time `json:"member_since"`
	EmailVerified   bool      `json:"email_verified"`
	ProfileComplete bool      `json:"profile_complete"`
	ProfileUpdates  int       `json:"profile_updates"`
}

// DashboardHandler serves aggregate stats for the current user.
type DashboardHandler struct {
	authService    service.IAuthService
	profileService service.IProfileService
}

func NewDashboardHandler(authService service.IAuthService, profileService service.IProfileService) *DashboardHandler {
	return &DashboardHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// RegisterRoutes registers the dashboard routes on an already
// authenticated router group.
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.GetStats)
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[DashboardHandler] failed to load user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	stats := DashboardStats{
		MemberSince:   user.CreatedAt,
		EmailVerified: user.EmailVerified,
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err == nil {
		stats.ProfileComplete = profile.HasUsername() && profile.FullName != ""
	}

	changes, err := h.profileService.GetProfileChanges(c.Request.Context(), userID)
	if err == nil {
		stats.ProfileUpdates = len(changes)
	}

	c.JSON(http.StatusOK, stats)
}
