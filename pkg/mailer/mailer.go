// Package mailer sends transactional email through Mailgun.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// ErrNotConfigured is returned when Mailgun credentials are absent.
var ErrNotConfigured = errors.New("mailer: mailgun not configured")

// Sender delivers a single HTML email. Substituted with a fake in tests.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Mailgun is the production Sender.
type Mailgun struct {
	mg   mailgun.Mailgun
	from string
}

// New builds a Mailgun sender. With empty credentials the sender is
// disabled and Send reports ErrNotConfigured.
func New(domain, apiKey, from string) *Mailgun {
	m := &Mailgun{from: from}
	if domain != "" && apiKey != "" {
		m.mg = mailgun.NewMailgun(domain, apiKey)
	}
	return m
}

// Send delivers one HTML message.
func (m *Mailgun) Send(ctx context.Context, to, subject, html string) error {
	if m.mg == nil {
		return ErrNotConfigured
	}

	msg := m.mg.NewMessage(m.from, subject, "", to)
	msg.SetHtml(html)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, _, err := m.mg.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
