package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/launchbase/backend/internal/models"
)

// MockEmailService is a mock implementation of the IEmailService interface
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) SendVerificationEmail(user *models.User, token string) error {
	args := m.Called(user, token)
	return args.Error(0)
}

func (m *MockEmailService) SendPasswordResetEmail(user *models.User, token string) error {
	args := m.Called(user, token)
	return args.Error(0)
}

func (m *MockEmailService) SendWelcomeEmail(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}
