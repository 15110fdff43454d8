package config

import (
	"os"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email transport. Callers treat sends as
// fire-and-forget per message: a failure is logged by the caller, never
// retried here.
type Mailer interface {
	Send(to string, subject string, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a Mailer from env:
//
//   - SMTP_HOST, SMTP_PORT (default 587)
//   - SMTP_USER, SMTP_PASSWORD
//   - SMTP_FROM (fallback: SMTP_USER)
func NewSMTPMailer() Mailer {
	host := os.Getenv("SMTP_HOST")
	port := intFromEnv("SMTP_PORT", 587)
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *smtpMailer) Send(to string, subject string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
