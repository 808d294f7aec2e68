package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/seniorcare/admin-api/internal/config"
)

type Service interface {
	SendNotification(ctx context.Context, to, message string) error
	SendCustom(ctx context.Context, to, subject, body string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendNotification(ctx context.Context, to, message string) error {
	return s.SendCustom(ctx, to, "You have a new notification", message)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
