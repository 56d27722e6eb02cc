package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	// Nullable at the schema level, but creation always assigns one.
	AestheticianID *uint `gorm:"index" json:"aesthetician_id"`
	Aesthetician   User  `gorm:"foreignKey:AestheticianID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"aesthetician"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	// YYYY-MM-DD and HH:MM. Lexicographic order equals chronological order,
	// which the slot index and the sweeper rely on.
	AppointmentDate string `gorm:"size:10;not null;index:idx_bookings_slot" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;not null;index:idx_bookings_slot" json:"appointment_time"`

	// pending, approved, rejected, cancelled, completed, expired
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ClientNote       string `gorm:"type:text" json:"client_note"`
	AestheticianNote string `gorm:"type:text" json:"aesthetician_note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
