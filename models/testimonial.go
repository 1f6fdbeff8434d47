package models

import "time"

type Testimonial struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Content   string    `gorm:"not null" json:"content"`
	Approved  bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
