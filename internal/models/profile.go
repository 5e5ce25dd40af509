package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile mirrors and extends an identity with user-facing
// attributes. It shares the identity's primary key and is created by the
// on_user_created trigger in the same transaction as the users insert.
type UserProfile struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username  *string   `gorm:"size:50;uniqueIndex" json:"username"`
	FullName  string    `gorm:"size:100" json:"full_name"`
	AvatarURL string    `gorm:"size:255" json:"avatar_url"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// HasUsername reports whether the profile has claimed a username.
func (p *UserProfile) HasUsername() bool {
	return p.Username != nil && *p.Username != ""
}
