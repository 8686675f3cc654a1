package models

import "gorm.io/gorm"

// District groups students under a district admin
type District struct {
	gorm.Model
	Name          string `json:"name" gorm:"unique;not null"`
	State         string `json:"state"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
	ContactMobile string `json:"contact_mobile"`
	IsDeleted     bool   `gorm:"default:false"`
}
