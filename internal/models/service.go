package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	DurationMinutes int  `gorm:"not null" json:"duration_minutes"`
	IsActive        bool `gorm:"default:true" json:"is_active"`

	Image     string `gorm:"size:255" json:"image"`
	CreatedBy uint   `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
