package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is the admin-authored message; delivery is tracked per
// recipient in NotificationRecipient fan-out rows.
type Notification struct {
	gorm.Model
	Title        string         `json:"title"`
	Body         string         `json:"body" gorm:"type:text"`
	AudienceType string         `json:"audience_type" gorm:"default:'ALL'"` // ALL, CLASS, DISTRICT, STUDENTS
	ClassLevel   string         `json:"class_level"`                        // for CLASS audience
	DistrictID   *uint          `json:"district_id"`                        // for DISTRICT audience
	StudentIDs   datatypes.JSON `json:"student_ids"`                        // for STUDENTS audience
	SendEmail    bool           `json:"send_email" gorm:"default:false"`
	CreatedBy    uint           `json:"created_by" gorm:"index"`
	IsDeleted    bool           `gorm:"default:false"`
}

// NotificationRecipient is one fan-out row per targeted student
type NotificationRecipient struct {
	gorm.Model
	NotificationID uint       `json:"notification_id" gorm:"index;not null"`
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	IsRead         bool       `json:"is_read" gorm:"default:false"`
	ReadAt         *time.Time `json:"read_at"`
	IsDeleted      bool       `gorm:"default:false"`
}
