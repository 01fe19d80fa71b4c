package services

import (
	"academy/config"
	"academy/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:  "test-secret",
		AppName: "IO Builds Academy",
	}
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.OtpCode{},
		&models.CouponCode{},
	))
	return db
}

func newTestOTPService(t *testing.T) (*OTPService, *[]string) {
	t.Helper()
	var sent []string
	svc := NewOTPService(setupTestDB(t))
	svc.Sender = func(recipient, message string) error {
		sent = append(sent, message)
		return nil
	}
	return svc, &sent
}

func TestOTPSendAndVerify(t *testing.T) {
	svc, sent := newTestOTPService(t)

	require.NoError(t, svc.Send("94711234567", models.OtpPurposeRegistration))
	require.Len(t, *sent, 1)

	var record models.OtpCode
	require.NoError(t, svc.db.First(&record).Error)
	assert.Len(t, record.Code, 6)
	assert.Contains(t, (*sent)[0], record.Code)
	assert.WithinDuration(t, time.Now().Add(OTPValidity), record.ExpiresAt, 5*time.Second)

	require.NoError(t, svc.Verify("94711234567", record.Code, models.OtpPurposeRegistration))

	verified, err := svc.LatestVerified("94711234567", models.OtpPurposeRegistration)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
}

func TestOTPVerifyMismatch(t *testing.T) {
	svc, _ := newTestOTPService(t)

	require.NoError(t, svc.Send("94711234567", models.OtpPurposeRegistration))

	err := svc.Verify("94711234567", "000000", models.OtpPurposeRegistration)
	assert.ErrorIs(t, err, ErrOTPMismatch)
}

func TestOTPVerifyExpired(t *testing.T) {
	svc, _ := newTestOTPService(t)

	record := models.OtpCode{
		MobileNumber: "94711234567",
		Code:         "123456",
		Purpose:      models.OtpPurposeRegistration,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	require.NoError(t, svc.db.Create(&record).Error)

	err := svc.Verify("94711234567", "123456", models.OtpPurposeRegistration)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPVerifyNoRecord(t *testing.T) {
	svc, _ := newTestOTPService(t)

	err := svc.Verify("94711234567", "123456", models.OtpPurposeRegistration)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

// Only the newest unverified code for a number counts; resending invalidates
// the older one in practice.
func TestOTPVerifyUsesNewestCode(t *testing.T) {
	svc, _ := newTestOTPService(t)

	older := models.OtpCode{
		MobileNumber: "94711234567",
		Code:         "111111",
		Purpose:      models.OtpPurposeRegistration,
		ExpiresAt:    time.Now().Add(OTPValidity),
	}
	older.CreatedAt = time.Now().Add(-2 * time.Minute)
	require.NoError(t, svc.db.Create(&older).Error)

	newer := models.OtpCode{
		MobileNumber: "94711234567",
		Code:         "222222",
		Purpose:      models.OtpPurposeRegistration,
		ExpiresAt:    time.Now().Add(OTPValidity),
	}
	require.NoError(t, svc.db.Create(&newer).Error)

	assert.ErrorIs(t, svc.Verify("94711234567", "111111", models.OtpPurposeRegistration), ErrOTPMismatch)
	assert.NoError(t, svc.Verify("94711234567", "222222", models.OtpPurposeRegistration))
}

// A code that has been verified once is spent; replaying it fails.
func TestOTPVerifyIsSingleUse(t *testing.T) {
	svc, _ := newTestOTPService(t)

	record := models.OtpCode{
		MobileNumber: "94711234567",
		Code:         "123456",
		Purpose:      models.OtpPurposeRegistration,
		ExpiresAt:    time.Now().Add(OTPValidity),
	}
	require.NoError(t, svc.db.Create(&record).Error)

	require.NoError(t, svc.Verify("94711234567", "123456", models.OtpPurposeRegistration))

	err := svc.Verify("94711234567", "123456", models.OtpPurposeRegistration)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPPurposesAreIsolated(t *testing.T) {
	svc, _ := newTestOTPService(t)

	record := models.OtpCode{
		MobileNumber: "94711234567",
		Code:         "123456",
		Purpose:      models.OtpPurposeRegistration,
		ExpiresAt:    time.Now().Add(OTPValidity),
	}
	require.NoError(t, svc.db.Create(&record).Error)

	err := svc.Verify("94711234567", "123456", models.OtpPurposePasswordReset)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPConsume(t *testing.T) {
	svc, _ := newTestOTPService(t)

	require.NoError(t, svc.Send("94711234567", models.OtpPurposePasswordReset))

	var record models.OtpCode
	require.NoError(t, svc.db.First(&record).Error)
	require.NoError(t, svc.Verify("94711234567", record.Code, models.OtpPurposePasswordReset))

	verified, err := svc.LatestVerified("94711234567", models.OtpPurposePasswordReset)
	require.NoError(t, err)
	require.NoError(t, svc.Consume(verified))

	_, err = svc.LatestVerified("94711234567", models.OtpPurposePasswordReset)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPSendSurvivesGatewayFailure(t *testing.T) {
	svc, _ := newTestOTPService(t)
	svc.Sender = func(recipient, message string) error {
		return assert.AnError
	}

	err := svc.Send("94711234567", models.OtpPurposeRegistration)
	assert.Error(t, err)

	// The stored code is still usable even though the SMS failed
	var record models.OtpCode
	require.NoError(t, svc.db.First(&record).Error)
	assert.NoError(t, svc.Verify("94711234567", record.Code, models.OtpPurposeRegistration))
}

func TestOTPPurgeExpired(t *testing.T) {
	svc, _ := newTestOTPService(t)

	expired := models.OtpCode{
		MobileNumber: "94711234567",
		Code:         "111111",
		Purpose:      models.OtpPurposeRegistration,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	live := models.OtpCode{
		MobileNumber: "94711234567",
		Code:         "222222",
		Purpose:      models.OtpPurposeRegistration,
		ExpiresAt:    time.Now().Add(OTPValidity),
	}
	require.NoError(t, svc.db.Create(&expired).Error)
	require.NoError(t, svc.db.Create(&live).Error)

	purged, err := svc.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var count int64
	require.NoError(t, svc.db.Model(&models.OtpCode{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
