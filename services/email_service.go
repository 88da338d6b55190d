// File: /services/email_service.go
package services

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"photoshare-api/config"
	"photoshare-api/logging"
)

// WelcomeMailer sends the one-off message a new account receives.
type WelcomeMailer interface {
	SendWelcomeEmail(email, name string) error
}

type EmailService struct {
	config *config.EmailConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewEmailService returns nil when no SMTP host is configured.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		logger: logging.WithComponent("email_service"),
	}
}

func (es *EmailService) SendWelcomeEmail(email, name string) error {
	m := es.newMessage(email, "Welcome to PhotoShare!")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to PhotoShare</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #1877f2; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>PhotoShare</h1>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Your account is ready. Upload your first photo, share your friend link or QR code,
            and start reacting to what your friends post.</p>
        </div>
        <div class="footer">
            <p>You received this email because an account was created with this address.</p>
        </div>
    </div>
</body>
</html>`, name)

	textBody := fmt.Sprintf(`Hello %s!

Your account is ready. Upload your first photo, share your friend link or QR code,
and start reacting to what your friends post.
`, name)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	es.logger.Info("Welcome email sent", zap.String("email", email))
	return nil
}

func (es *EmailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", es.config.FromEmail, es.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}
