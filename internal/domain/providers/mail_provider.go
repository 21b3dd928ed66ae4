package providers

import "context"

// MailSender delivers transactional mail (review invitations).
type MailSender interface {
	// Send delivers a plain-text message with an HTML alternative
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}
