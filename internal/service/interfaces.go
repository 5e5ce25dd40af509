package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/launchbase/backend/internal/models"
	"github.com/launchbase/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateVerificationToken(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateVerificationToken(ctx context.Context, token string) (*models.User, error)
	GenerateResetToken(ctx context.Context, email string) (*models.User, string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	GetProfileChanges(ctx context.Context, userID uuid.UUID) ([]models.ProfileChange, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(to, subject, body string) error
	SendVerificationEmail(user *models.User, token string) error
	SendPasswordResetEmail(user *models.User, token string) error
	SendWelcomeEmail(user *models.User) error
}

// IAvatarService defines the interface for avatar storage
type IAvatarService interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (string, error)
}
