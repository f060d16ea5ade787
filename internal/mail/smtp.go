package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"personal-tracker/internal/config"
)

// SMTP sends mail through a configured SMTP relay.
type SMTP struct {
	cfg config.SMTPConfig
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Send(subject, body string, bcc []string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("smtp transport disabled")
	}
	if len(bcc) == 0 {
		return fmt.Errorf("no recipients")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("Bcc", bcc...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
