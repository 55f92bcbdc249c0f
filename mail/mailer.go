// mail/mailer.go
package mail

import (
	"fmt"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends one HTML email. Satisfied by SMTPMailer in production and
// by fakes in tests.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers through a transactional SMTP relay (gmail in the
// original deployment).
type SMTPMailer struct {
	host     string
	port     int
	user     string
	pass     string
	fromName string
}

func NewSMTPMailer() (*SMTPMailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", p, err)
		}
		port = parsed
	}
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")
	if user == "" || pass == "" {
		return nil, fmt.Errorf("EMAIL_USER and EMAIL_PASS environment variables are required")
	}
	fromName := os.Getenv("EMAIL_FROM_NAME")
	if fromName == "" {
		fromName = "Event Team"
	}
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, fromName: fromName}, nil
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.user, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
