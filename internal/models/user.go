package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity record: credentials, verification state and the
// token material for the verification and password-reset flows.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`

	EmailVerified         bool       `gorm:"not null;default:false" json:"email_verified"`
	VerificationToken     *string    `gorm:"size:64;index" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	ResetToken            *string    `gorm:"size:64;index" json:"-"`
	ResetExpiresAt        *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the identity ID. The profile row that mirrors it
// is created by the database trigger, never here.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
