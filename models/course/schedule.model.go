package course

import (
	"time"

	"gorm.io/gorm"
)

// LevelSchedule sets when a (class, level) pair unlocks. A level without a
// schedule row is always unlocked.
type LevelSchedule struct {
	gorm.Model
	ClassLevel string    `json:"class_level" gorm:"index;not null"`
	Level      string    `json:"level" gorm:"index;not null"`
	UnlockAt   time.Time `json:"unlock_at" gorm:"not null"`
	IsDeleted  bool      `gorm:"default:false"`
}

// QuizValidity bounds the period during which a (class, level) quiz may be
// attempted for credit. A level without a validity row never expires.
type QuizValidity struct {
	gorm.Model
	ClassLevel string    `json:"class_level" gorm:"index;not null"`
	Level      string    `json:"level" gorm:"index;not null"`
	ValidUntil time.Time `json:"valid_until" gorm:"not null"`
	IsDeleted  bool      `gorm:"default:false"`
}

// PassingMark overrides the quiz's own pass percentage for a (class, level)
type PassingMark struct {
	gorm.Model
	ClassLevel      string `json:"class_level" gorm:"index;not null"`
	Level           string `json:"level" gorm:"index;not null"`
	RequiredPercent int    `json:"required_percent" gorm:"not null"`
	IsDeleted       bool   `gorm:"default:false"`
}
