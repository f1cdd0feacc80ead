// Package mail delivers outbound email over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/model"
)

// Settings configures the SMTP relay.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// sender is the part of *gomail.Client the mailer needs.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

var _ model.Mailer = (*SMTP)(nil)

// SMTP implements model.Mailer.
type SMTP struct {
	client sender
	from   string
}

// NewSMTP validates settings and creates an SMTP mailer.
func NewSMTP(s Settings) (*SMTP, error) {
	if s.Host == "" {
		return nil, apperr.Configuration("smtp host is not configured")
	}
	if s.From == "" {
		return nil, apperr.Configuration("smtp from address is not configured")
	}
	if s.Port <= 0 {
		s.Port = 587
	}

	opts := []gomail.Option{gomail.WithPort(s.Port)}
	if s.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}

	client, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return newSMTPWithSender(client, s.From), nil
}

func newSMTPWithSender(client sender, from string) *SMTP {
	return &SMTP{client: client, from: from}
}

// Send builds and delivers a single message.
func (s *SMTP) Send(ctx context.Context, m model.Mail) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(m.Subject)

	contentType := gomail.TypeTextPlain
	if m.HTML {
		contentType = gomail.TypeTextHTML
	}
	msg.SetBodyString(contentType, m.Body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
