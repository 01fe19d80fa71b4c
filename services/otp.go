package services

import (
	"academy/models"
	"academy/utils"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OTPValidity is how long a code stays usable after issuance
const OTPValidity = 5 * time.Minute

var (
	ErrOTPNotFound = errors.New("OTP expired or not found. Please request a new one.")
	ErrOTPMismatch = errors.New("Invalid OTP")
)

type OTPService struct {
	db *gorm.DB
	// Sender dispatches the code over SMS. Swappable in tests.
	Sender func(recipient, message string) error
}

func NewOTPService(db *gorm.DB) *OTPService {
	return &OTPService{db: db, Sender: utils.SendSMS}
}

// Send generates a 6-digit code, stores it with a 5-minute expiry and
// dispatches it over the SMS gateway. A gateway failure is returned to the
// caller, but the stored code stays valid either way.
func (s *OTPService) Send(mobile, purpose string) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	record := models.OtpCode{
		MobileNumber: mobile,
		Code:         code,
		Purpose:      purpose,
		ExpiresAt:    time.Now().Add(OTPValidity),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.Sender(mobile, utils.OTPMessage(purpose, code)); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}

// Verify checks the submitted code against the newest unverified, unexpired
// record for (mobile, purpose) and consumes it on match. Stale rows are
// tolerated as garbage; only the most recent one is trusted.
func (s *OTPService) Verify(mobile, code, purpose string) error {
	var record models.OtpCode
	err := s.db.
		Where("mobile_number = ? AND purpose = ? AND verified = ? AND expires_at > ?",
			mobile, purpose, false, time.Now()).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOTPNotFound
		}
		return err
	}

	if record.Code != code {
		return ErrOTPMismatch
	}

	record.Verified = true
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to update OTP status: %w", err)
	}

	return nil
}

// LatestVerified returns the newest verified, unexpired record for
// (mobile, purpose). The password-reset flow requires one before it will
// touch the account.
func (s *OTPService) LatestVerified(mobile, purpose string) (*models.OtpCode, error) {
	var record models.OtpCode
	err := s.db.
		Where("mobile_number = ? AND purpose = ? AND verified = ? AND expires_at > ?",
			mobile, purpose, true, time.Now()).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Consume deletes a spent OTP record
func (s *OTPService) Consume(record *models.OtpCode) error {
	return s.db.Unscoped().Delete(record).Error
}

// PurgeExpired removes dead unverified codes past their expiry
func (s *OTPService) PurgeExpired() (int64, error) {
	res := s.db.Unscoped().
		Where("expires_at < ? AND verified = ?", time.Now(), false).
		Delete(&models.OtpCode{})
	return res.RowsAffected, res.Error
}
