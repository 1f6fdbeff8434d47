package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Service is a bookable physiotherapy session type.
type Service struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Price           int64     `gorm:"not null" json:"price"` // paise
	Active          bool      `gorm:"not null" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      *uint         `gorm:"index" json:"user_id"` // nil for guest bookings
	ServiceID   uint          `gorm:"not null" json:"service_id"`
	Service     Service       `gorm:"foreignKey:ServiceID" json:"service"`
	PatientName string        `gorm:"not null" json:"patient_name"`
	Email       string        `gorm:"not null" json:"email"`
	Phone       string        `gorm:"not null" json:"phone"`
	Date        time.Time     `gorm:"not null" json:"date"`
	Slot        string        `gorm:"not null" json:"slot"` // e.g. "10:00-10:45"
	Notes       string        `json:"notes"`
	Status      BookingStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
