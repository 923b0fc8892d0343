// Package mailer delivers outbound mail. Delivery is synchronous: a failed
// send fails the request that triggered it.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const (
	ProviderConsole = "console"
	ProviderResend  = "resend"
)

// Message is a plain text mail.
type Message struct {
	Subject string
	Body    string
	From    string
	To      []string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config selects and configures the transport.
type Config struct {
	Provider     string
	ResendAPIKey string
}

// New builds the transport named by cfg.Provider.
func New(cfg Config, logger zerolog.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderConsole:
		return NewLogMailer(logger), nil
	case ProviderResend:
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("mailer: resend provider requires an API key")
		}
		return NewResendMailer(resend.NewClient(cfg.ResendAPIKey), logger), nil
	}
	return nil, fmt.Errorf("mailer: unknown provider %q", cfg.Provider)
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Str("from", msg.From).
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail")
	return nil
}
