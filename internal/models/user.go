package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username  string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// admin | aesthetician | client
	Role         string `gorm:"size:20;default:'client'" json:"role"`
	IsSuperAdmin bool   `gorm:"default:false" json:"is_super_admin"`

	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	Avatar  string `gorm:"size:255" json:"avatar"`

	EmailVerifiedAt *time.Time `json:"email_verified_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
