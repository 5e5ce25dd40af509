package api

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchbase/backend/config"
	"github.com/launchbase/backend/internal/database"
)

// setupTokenHeader carries the shared secret for the setup endpoint.
const setupTokenHeader = "X-Setup-Token"

// SetupHandler exposes the development-only schema bootstrap. It is
// never mounted in production; the CLI in cmd/bootstrap is the path for
// managed environments.
type SetupHandler struct {
	db    *sql.DB
	token string
	env   config.Environment
}

func NewSetupHandler(db *sql.DB, token string, env config.Environment) *SetupHandler {
	return &SetupHandler{
		db:    db,
		token: token,
		env:   env,
	}
}

// RegisterRoutes registers the setup routes.
func (h *SetupHandler) RegisterRoutes(router *gin.RouterGroup) {
	dev := router.Group("/dev")
	{
		dev.POST("/setup", h.RunSetup)
		dev.GET("/setup/status", h.SetupStatus)
	}
}

// guard rejects callers that are not allowed to run setup. Production is
// always refused regardless of token.
func (h *SetupHandler) guard(c *gin.Context) bool {
	if h.env == config.Production {
		c.JSON(http.StatusForbidden, gin.H{"error": "setup is not available in this environment"})
		return false
	}
	if h.token == "" || c.GetHeader(setupTokenHeader) != h.token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid setup token"})
		return false
	}
	return true
}

// RunSetup applies the schema statements and reports per-statement
// results. A partial failure still returns the full report so the
// caller can see exactly which statement broke.
func (h *SetupHandler) RunSetup(c *gin.Context) {
	if !h.guard(c) {
		return
	}

	report := database.Bootstrap(c.Request.Context(), h.db)
	if !report.OK() {
		log.Printf("[SetupHandler] bootstrap finished with failures")
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":         false,
			"statements": report.Statements,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"statements": report.Statements,
	})
}

// SetupStatus probes whether the schema responds to a trivial query.
// It says nothing about whether a previous setup run succeeded; the
// bootstrap report is the only record of that.
func (h *SetupHandler) SetupStatus(c *gin.Context) {
	if !h.guard(c) {
		return
	}

	if err := database.Status(c.Request.Context(), h.db); err != nil {
		c.JSON(http.StatusOK, gin.H{"ready": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}
