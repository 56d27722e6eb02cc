package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/glowbook/salon-api/internal/config"
)

// Mailer delivers the two auth emails the system sends. Everything else the
// product might notify about is out of scope.
type Mailer interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetCode(to, code string) error
}

// New returns an SMTP mailer, or a log-only mailer when SMTP is not
// configured (local development).
func New(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

// --------------------------------------------------
// SMTP
// --------------------------------------------------

type smtpMailer struct {
	cfg *config.Config
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.cfg.MailFrom, to, subject, body,
	)

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, m.cfg.MailFrom, []string{to}, []byte(msg))
}

func (m *smtpMailer) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf(
		"Your GlowBook verification code is: %s\n\nThe code expires in 10 minutes.",
		code,
	)
	return m.send(to, "Verify your email", body)
}

func (m *smtpMailer) SendPasswordResetCode(to, code string) error {
	body := fmt.Sprintf(
		"Your GlowBook password reset code is: %s\n\nThe code expires in 10 minutes. If you did not request a reset, ignore this email.",
		code,
	)
	return m.send(to, "Reset your password", body)
}

// --------------------------------------------------
// Log-only fallback
// --------------------------------------------------

type logMailer struct{}

func (m *logMailer) SendVerificationCode(to, code string) error {
	log.Printf("mailer (noop): verification code for %s: %s", to, code)
	return nil
}

func (m *logMailer) SendPasswordResetCode(to, code string) error {
	log.Printf("mailer (noop): password reset code for %s: %s", to, code)
	return nil
}
