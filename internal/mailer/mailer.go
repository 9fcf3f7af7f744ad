package mailer

import (
	"fmt"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	cfg *config.Config
	log zerolog.Logger
}

// New creates a Mailer.
func New(cfg *config.Config, log zerolog.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: log.With().Str("component", "mailer").Logger(),
	}
}

// SendOTP delivers the registration one-time code.
func (m *Mailer) SendOTP(to, name, otp string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your one-time password for account verification is:</p><h2>%s</h2><p>This code will expire shortly. Please do not share it.</p>",
		name, otp,
	)
	return m.send(to, "E-learning Platform Verification", body)
}

// SendPasswordReset delivers the password-reset link.
func (m *Mailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s", m.cfg.FrontendURL, token)
	body := fmt.Sprintf(
		"<p>Hello,</p><p>You requested to reset your password. Use the link below to proceed:</p><p><a href=%q>Reset Password</a></p><p>If you did not make this request, please ignore this email.</p>",
		link,
	)
	return m.send(to, "E-learning Platform Password Reset", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.log.Debug().Str("to", to).Str("subject", subject).Msg("Mail sent")
	return nil
}
