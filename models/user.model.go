package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage     string `gorm:"default:''"`
	Name             string `gorm:"default:''"`
	Email            string `gorm:"unique;not null"`
	Mobile           string `gorm:"default:''"`
	Role             string `gorm:"default:'STUDENT'"` // STUDENT, DISTRICT_ADMIN, MASTER_ADMIN
	Password         string `gorm:"not null"`
	ClassLevel       string `gorm:"index;default:''"` // e.g. "6th"; empty for admins
	DistrictID       *uint  `gorm:"index" json:"district_id"`
	SchoolName       string
	GuardianName     string
	GuardianMobile   string
	IsMobileVerified bool      `gorm:"default:false"`
	IsEmailVerified  bool      `gorm:"default:false"`
	LastLogin        time.Time `gorm:"default:NULL"`
	IsBlocked        bool      `gorm:"default:false"`
	IsDeleted        bool      `gorm:"default:false"`
}
