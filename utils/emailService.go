package utils

import (
	"academy/config"
	"fmt"
	"html"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridKey == "" {
		log.Println("SENDGRID_API_KEY not configured")
		return fmt.Errorf("email service not configured")
	}

	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("Failed to send email to %s, response code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
	}

	return nil
}

// SendRegistrationEmail sends the registration confirmation to a new registrant
func SendRegistrationEmail(name, email, phone, courseName string) error {
	// Escape user-supplied fields before they land in HTML
	safeName := html.EscapeString(name)
	safeEmail := html.EscapeString(email)
	safePhone := html.EscapeString(phone)
	safeCourse := html.EscapeString(courseName)

	subject := "Registration Confirmed - " + config.AppConfig.AppName

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background: linear-gradient(135deg, #2563eb, #1e40af); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
				.content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
				.highlight { background: #dbeafe; padding: 15px; border-radius: 8px; margin: 20px 0; }
				.footer { text-align: center; color: #6b7280; font-size: 14px; margin-top: 20px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Welcome to %s!</h1>
				</div>
				<div class="content">
					<h2>Hello %s!</h2>
					<p>Thank you for registering with %s. We're excited to have you join us!</p>
					<div class="highlight">
						<strong>Course:</strong> %s<br>
						<strong>Contact Email:</strong> %s<br>
						<strong>Phone:</strong> %s
					</div>
					<p>Our team will contact you shortly with more details about your selected course, including:</p>
					<ul>
						<li>Course start date and schedule</li>
						<li>Required materials and setup</li>
						<li>Payment information</li>
					</ul>
					<p>If you have any questions in the meantime, feel free to reach out to us.</p>
					<p>Best regards,<br><strong>The %s Team</strong></p>
				</div>
				<div class="footer">
					<p>%s | Building the Future, One Student at a Time</p>
				</div>
			</div>
		</body>
		</html>
	`, config.AppConfig.AppName, safeName, config.AppConfig.AppName, safeCourse, safeEmail, safePhone,
		config.AppConfig.AppName, config.AppConfig.AppName)

	return SendEmail(name, email, subject, body)
}

// SendPaymentVerifiedEmail tells a student their enrollment is unlocked
func SendPaymentVerifiedEmail(name, email, courseName string) error {
	safeName := html.EscapeString(name)
	safeCourse := html.EscapeString(courseName)

	subject := "Payment Verified - " + config.AppConfig.AppName

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Payment Verified!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your payment has been verified and you are now enrolled in:</p>
					<h3 style="text-align: center; color: #2563eb; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">Head over to your dashboard to start learning. Your curriculum, schedule and course materials are waiting for you.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">The %s Team</p>
				</div>
			</body>
		</html>
	`, safeName, safeCourse, config.AppConfig.AppName)

	return SendEmail(name, email, subject, body)
}
