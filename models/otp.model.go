package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP rows in the database are the only source of truth for verification
// state; there is no in-memory verified set.
type OTP struct {
	gorm.Model
	UserID    uint      `gorm:"not null" json:"user_id"`
	Email     string    `gorm:"size:100;index" json:"email,omitempty"`
	Mobile    string    `gorm:"size:15;index" json:"mobile,omitempty"`
	Code      string    `gorm:"size:6;not null" json:"code"`
	Purpose   string    `gorm:"size:30;default:'VERIFY'" json:"purpose"` // VERIFY, RESET_PASSWORD
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	IsDeleted bool      `gorm:"default:false"`
}
