// Package mailer delivers transactional email such as verification links.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gatormarket/internal/config"
	"gatormarket/internal/middleware"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"
)

// Email is one outbound message with text and HTML bodies.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a single email.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// New builds the Mailer selected by cfg.MailDriver.
func New(cfg *config.Config) (Mailer, error) {
	switch cfg.MailDriver {
	case "", "log":
		return NewLogMailer(middleware.Logger), nil
	case "smtp":
		return NewSMTPMailer(cfg)
	default:
		return nil, fmt.Errorf("unsupported mail driver %q", cfg.MailDriver)
	}
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a LogMailer writing to l.
func NewLogMailer(l *slog.Logger) *LogMailer {
	return &LogMailer{logger: l}
}

func (m *LogMailer) Send(ctx context.Context, msg Email) error {
	if msg.To == "" {
		return errors.New("mailer: empty recipient")
	}
	m.logger.InfoContext(ctx, "email not delivered (log driver)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Text),
	)
	return nil
}

// SMTPMailer delivers through an SMTP relay, paced by a token bucket so
// bursts of sign-ups do not trip provider send limits.
type SMTPMailer struct {
	client  *mail.Client
	from    string
	limiter *rate.Limiter
}

// NewSMTPMailer configures a client for cfg's SMTP relay.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	perSecond := cfg.MailRatePerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &SMTPMailer{
		client:  client,
		from:    cfg.MailFrom,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Email) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail rate limiter: %w", err)
	}

	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		out.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
