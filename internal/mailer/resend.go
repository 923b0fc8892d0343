package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type ResendMailer struct {
	client *resend.Client
	logger zerolog.Logger
}

func NewResendMailer(client *resend.Client, logger zerolog.Logger) *ResendMailer {
	return &ResendMailer{client: client, logger: logger}
}

// Send posts the message to the Resend API. Rate limit errors are not
// retried.
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if m.client == nil {
		return fmt.Errorf("resend client not initialized")
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			m.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return fmt.Errorf("mail rate limit exceeded (resets in %s seconds): %w", rateLimitErr.Reset, err)
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	m.logger.Info().
		Str("email_id", sent.Id).
		Strs("to", msg.To).
		Msg("mail sent via Resend")
	return nil
}
