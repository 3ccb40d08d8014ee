package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/notesapp/backend/config"
	"github.com/notesapp/backend/pkg/logger"
)

// Mailer delivers password-reset tokens out of band
type Mailer interface {
	SendPasswordReset(toEmail, token string) error
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	password string
}

// New returns an SMTP mailer, or a dev mailer that only logs when SMTP is
// not configured.
func New(cfg *config.SMTPConfig) Mailer {
	if cfg.Host == "" || cfg.From == "" {
		logger.Warn("SMTP not configured, reset tokens will be logged instead of emailed", nil)
		return &devMailer{}
	}
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		password: cfg.Password,
	}
}

func (m *smtpMailer) SendPasswordReset(toEmail, token string) error {
	subject := "[Notes] Password reset"
	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h1 style="color: #333;">Password reset</h1>
	<p style="color: #666; line-height: 1.6;">
		A password reset was requested for your account.
		Use the token below to set a new password.
	</p>
	<div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center;">
		<code style="font-size: 18px;">%s</code>
	</div>
	<p style="color: #999; font-size: 14px;">
		* This token is valid for 15 minutes.
	</p>
	<p style="color: #999; font-size: 14px;">
		* If you did not request a reset, you can ignore this email.
	</p>
</body>
</html>
`, token)

	message := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.from, toEmail, subject, body,
	))

	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{toEmail}, message); err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"to": toEmail,
		})
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"to": toEmail,
	})
	return nil
}

// devMailer logs the token instead of sending mail
type devMailer struct{}

func (m *devMailer) SendPasswordReset(toEmail, token string) error {
	logger.Info("[DEV MODE] Password reset token", map[string]interface{}{
		"to":    toEmail,
		"token": token,
	})
	return nil
}
