package email

import (
	"fmt"

	"academy_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// GomailSender отправляет письма через SMTP
type GomailSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewGomailSender(cfg SMTPConfig) *GomailSender {
	return &GomailSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *GomailSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/html", email.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// NoopSender используется, когда SMTP не настроен
type NoopSender struct{}

func (NoopSender) Send(email *Email) error {
	logger.Debug("SMTP not configured, email skipped", "to", email.To, "subject", email.Subject)
	return nil
}

// NewSender выбирает реализацию по конфигу
func NewSender(cfg SMTPConfig) Sender {
	if !cfg.Enabled() {
		return NoopSender{}
	}
	return NewGomailSender(cfg)
}
