package models

import "time"

const (
	CodePurposeVerifyEmail   = "verify_email"
	CodePurposeResetPassword = "reset_password"
)

type EmailVerificationCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Code    string `gorm:"size:6;not null" json:"-"`
	Purpose string `gorm:"size:20;default:'verify_email'" json:"purpose"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
