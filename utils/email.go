package utils

import (
	"errors"
	"fmt"
	"log"

	"github.com/k3a/html2text"
	"gopkg.in/gomail.v2"

	"titanstore/initializers"
)

var ErrEmailNotConfigured = errors.New("email service not configured")

const otpEmailTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Password Reset Request</h2>
  <p>%s</p>
  <p>Your verification code is:</p>
  <div style="background: #f3f4f6; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
    <h1 style="color: #2563eb; font-size: 32px; margin: 0; letter-spacing: 8px;">%s</h1>
  </div>
  <p style="color: #6b7280;">This code will expire in <strong>10 minutes</strong>.</p>
  <p style="color: #6b7280;">If you did not request this password reset, you can safely ignore this email.</p>
</div>`

// SendResetOtpEmail delivers the password reset code over SMTP. When SMTP
// credentials are missing the OTP is logged so local development still works.
func SendResetOtpEmail(config *initializers.Config, to string, name string, otp string) error {
	if config.SMTPUser == "" || config.SMTPPass == "" {
		log.Printf("EMAIL NOT CONFIGURED - OTP for %s is %s", to, otp)
		return ErrEmailNotConfigured
	}

	greeting := "Hi,"
	if name != "" {
		greeting = fmt.Sprintf("Hi %s,", name)
	}
	htmlBody := fmt.Sprintf(otpEmailTemplate, greeting, otp)

	from := config.EmailFrom
	if from == "" {
		from = config.SMTPUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your password reset code")
	m.SetBody("text/plain", html2text.HTML2Text(htmlBody))
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		log.Println("Failed to send OTP email:", err)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}
