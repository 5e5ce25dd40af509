package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileChange records a single field mutation on a user profile.
type ProfileChange struct {
	gorm.Model
	UserID    string    `gorm:"index;not null"`
	Field     string    `gorm:"not null"`
	OldValue  string    `gorm:"type:text"`
	NewValue  string    `gorm:"type:text"`
	ChangedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ProfileChange
func (ProfileChange) TableName() string {
	return "profile_changes"
}
