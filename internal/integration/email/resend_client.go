// Package email delivers expiring-offer reminders via Resend.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/offer-tracker/backend/internal/application/adapter"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
	toEmail   string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail, toEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// Send delivers a single HTML email to the configured recipient.
func (c *ResendClient) Send(ctx context.Context, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.toEmail},
		Subject: subject,
		Html:    htmlBody,
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// MockEmailSender records sent emails for testing.
type MockEmailSender struct {
	Sent []SentEmail
	Err  error
}

// SentEmail is one email captured by the mock.
type SentEmail struct {
	Subject string
	HTML    string
}

// Send implements the adapter.EmailSender interface for testing.
func (m *MockEmailSender) Send(ctx context.Context, subject, htmlBody string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentEmail{Subject: subject, HTML: htmlBody})
	return nil
}

// Ensure implementations satisfy the interface.
var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
