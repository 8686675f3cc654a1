package course

import "gorm.io/gorm"

// Video is a lesson video inside a course
type Video struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	DurationSec int    `json:"duration_sec" gorm:"default:0"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// CoursePDF is a downloadable study document inside a course
type CoursePDF struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	FileURL     string `json:"file_url"`
	PageCount   int    `json:"page_count" gorm:"default:0"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// ContentProgress tracks a student's consumption of one content item
type ContentProgress struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ContentType string `json:"content_type"` // VIDEO, PDF
	ContentID   uint   `json:"content_id" gorm:"index;not null"`
	IsDeleted   bool   `gorm:"default:false"`
}
