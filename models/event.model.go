package models

import (
	"time"

	"gorm.io/gorm"
)

// Event represents a platform event (webinar, competition, celebration)
type Event struct {
	gorm.Model
	Title       string    `json:"title"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location"`
	ClassLevel  string    `json:"class_level" gorm:"default:''"` // empty = all classes
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	IsDeleted   bool      `gorm:"default:false"`
}
