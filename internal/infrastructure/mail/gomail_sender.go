package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/knotworks/vendorhub/internal/domain/providers"
	"github.com/knotworks/vendorhub/pkg/config"
)

// GomailSender delivers mail over SMTP using gomail.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

var _ providers.MailSender = (*GomailSender)(nil)

// NewGomailSender creates a new SMTP mail sender
func NewGomailSender(cfg *config.MailConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a message with text and HTML bodies. gomail has no native
// context support, so cancellation is checked before dialing only.
func (s *GomailSender) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
