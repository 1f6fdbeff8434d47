package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// PartnerApplication is a physiotherapist's request to join the platform.
type PartnerApplication struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	Name            string            `gorm:"not null" json:"name"`
	Email           string            `gorm:"not null" json:"email"`
	Phone           string            `gorm:"not null" json:"phone"`
	ClinicName      string            `json:"clinic_name"`
	City            string            `json:"city"`
	ExperienceYears int               `json:"experience_years"`
	Message         string            `json:"message"`
	Status          ApplicationStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
