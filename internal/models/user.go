package models

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleWorker   Role = "WORKER"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleWorker
}

// User is a single identity record: a customer booking services or a
// worker (provider) offering them. The profile fields only carry meaning
// for workers but live on the same row.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'CUSTOMER';index" json:"role"`

	Phone           string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	FullName        string `gorm:"type:varchar(120)" json:"full_name,omitempty"`
	Bio             string `gorm:"type:text" json:"bio,omitempty"`
	AgencyName      string `gorm:"type:varchar(120)" json:"agency_name,omitempty"`
	ExperienceYears int    `json:"experience_years,omitempty"`
	ProfilePic      string `gorm:"type:text" json:"profile_pic,omitempty"` // base64 payload
	City            string `gorm:"type:varchar(120);index" json:"city,omitempty"`

	ServiceCategory string `gorm:"type:varchar(80);index" json:"service_category,omitempty"`
	FCMToken        string `gorm:"type:text" json:"fcm_token,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
