package utils

import (
	"academy/config"
	"academy/models"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// SendSMS dispatches a plain text message through the text.lk gateway
func SendSMS(recipient, message string) error {
	if config.AppConfig.TextLKApiToken == "" {
		log.Println("TEXTLK_API_TOKEN not configured")
		return fmt.Errorf("SMS gateway not configured")
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.TextLKApiToken).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"recipient": recipient,
			"sender_id": config.AppConfig.TextLKSenderID,
			"type":      "plain",
			"message":   message,
		}).
		Post(config.AppConfig.TextLKApiUrl)

	if err != nil {
		log.Printf("Error while sending SMS: %v", err)
		return err
	}

	if resp.StatusCode() >= 300 {
		log.Printf("Failed to send SMS, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send SMS, code: %d", resp.StatusCode())
	}

	return nil
}

// OTPMessage builds the SMS body for an OTP of the given purpose
func OTPMessage(purpose, code string) string {
	if purpose == models.OtpPurposePasswordReset {
		return fmt.Sprintf("Your %s password reset OTP is: %s. Valid for 5 minutes.", config.AppConfig.AppName, code)
	}
	return fmt.Sprintf("Your %s verification OTP is: %s. Valid for 5 minutes.", config.AppConfig.AppName, code)
}

// adminMobile looks up the configured admin number, falling back to env config
func adminMobile(db *gorm.DB) string {
	var setting models.AppSetting
	if err := db.Where("key = ?", models.SettingAdminMobile).First(&setting).Error; err == nil && setting.Value != "" {
		return setting.Value
	}
	return config.AppConfig.AdminMobile
}

// NotifyAdminNewPayment texts the admin about a freshly submitted registration.
// Best-effort: failures are logged, never propagated to the caller's flow.
func NotifyAdminNewPayment(db *gorm.DB, name, email, mobile, courseName string) {
	admin := adminMobile(db)
	if admin == "" {
		log.Println("Admin mobile not configured, skipping notification")
		return
	}

	message := fmt.Sprintf("New Payment Submitted!\nName: %s\nEmail: %s\nMobile: %s\nCourse: %s", name, email, mobile, courseName)
	if err := SendSMS(admin, message); err != nil {
		log.Printf("Error notifying admin about registration from %s: %v", email, err)
	}
}

// NotifyUserPaymentVerified texts a student that their payment cleared
func NotifyUserPaymentVerified(name, mobile, courseName string) {
	message := fmt.Sprintf(
		"Hi %s! Great news - your payment for %q has been verified. You now have full access to your course. Start learning at %s!",
		name, courseName, config.AppConfig.AppName,
	)
	if err := SendSMS(mobile, message); err != nil {
		log.Printf("Error notifying user %s about payment verification: %v", mobile, err)
	}
}
