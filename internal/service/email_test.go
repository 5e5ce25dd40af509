package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/launchbase/backend/config"
	"github.com/launchbase/backend/internal/models"
	"github.com/launchbase/backend/internal/service"
)

func newLoggingEmailService() service.IEmailService {
	// Without SMTP settings the service logs instead of sending.
	return service.NewEmailService(&config.Config{
		EmailFrom:     "noreply@launchbase.dev",
		EmailFromName: "Launchbase",
		FrontendURL:   "http://localhost:5173",
	})
}

func TestSendEmailWithoutSMTP(t *testing.T) {
	svc := newLoggingEmailService()
	assert.NoError(t, svc.SendEmail("jane@example.com", "Subject", "<p>Body</p>"))
}

func TestSendVerificationEmail(t *testing.T) {
	svc := newLoggingEmailService()
	user := &models.User{ID: uuid.New(), Email: "jane@example.com"}
	assert.NoError(t, svc.SendVerificationEmail(user, "verify-token"))
}

func TestSendPasswordResetEmail(t *testing.T) {
	svc := newLoggingEmailService()
	user := &models.User{ID: uuid.New(), Email: "jane@example.com"}
	assert.NoError(t, svc.SendPasswordResetEmail(user, "reset-token"))
}

func TestSendWelcomeEmail(t *testing.T) {
	svc := newLoggingEmailService()
	user := &models.User{ID: uuid.New(), Email: "jane@example.com"}
	assert.NoError(t, svc.SendWelcomeEmail(user))
}
