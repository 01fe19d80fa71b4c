package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes
const (
	OtpPurposeRegistration  = "registration"
	OtpPurposePasswordReset = "password_reset"
)

type OtpCode struct {
	gorm.Model
	MobileNumber string    `gorm:"size:15;index;not null" json:"mobile_number"`
	Code         string    `gorm:"size:6;not null" json:"code"`
	Purpose      string    `gorm:"size:20;index;not null" json:"purpose"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	Verified     bool      `gorm:"default:false" json:"verified"`
}
