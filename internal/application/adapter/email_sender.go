package adapter

import "context"

// EmailSender delivers notification emails.
type EmailSender interface {
	// Send delivers a single HTML email.
	Send(ctx context.Context, subject, htmlBody string) error
}
