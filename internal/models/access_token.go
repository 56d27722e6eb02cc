package models

import "time"

// AccessToken is an opaque bearer credential. Only the SHA-256 digest is
// stored; the same 64-hex string is what the client presents.
type AccessToken struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name      string `gorm:"size:50;default:'api'" json:"name"`
	TokenHash string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
