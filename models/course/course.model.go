package course

import "gorm.io/gorm"

// Course represents one teachable level for a class
type Course struct {
	gorm.Model
	ClassLevel   string `json:"class_level" gorm:"index;not null"` // e.g. "6th"
	Level        string `json:"level" gorm:"index;not null"`       // canonical numeric string, e.g. "1"
	Title        string `json:"title"`
	Description  string `json:"description" gorm:"type:text"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
