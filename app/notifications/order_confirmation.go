// Package notifications defines the background jobs that follow a settled
// order. Everything here is best effort: a delivery failure is logged and
// counted, never surfaced to the customer who already paid.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/mailer"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/queue"
)

// sender is injected once at boot via Setup; the job payload itself stays
// JSON-serializable.
var sender mailer.Sender

// Setup wires the mail sender and registers the job types with the queue.
// Must be called before queue workers start.
func Setup(s mailer.Sender) {
	sender = s
	queue.Register("*notifications.OrderConfirmationJob", func() queue.Job {
		return &OrderConfirmationJob{}
	})
}

// OrderConfirmationJob emails the customer a receipt for a settled payment.
type OrderConfirmationJob struct {
	Email     string `json:"email"`
	PaymentID string `json:"paymentId"`
}

// Handle delivers the confirmation email. Called by a queue worker, which
// owns retry and backoff.
func (j *OrderConfirmationJob) Handle() error {
	if sender == nil {
		logger.Warn("notifications: no mail sender wired, skipping", "payment_id", j.PaymentID)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	subject := "Bistro Boss - your order is confirmed"
	html := fmt.Sprintf(
		"<h2>Thank you for your order!</h2>"+
			"<p>Your payment has been received and your order is being prepared.</p>"+
			"<p>Payment reference: <strong>%s</strong></p>",
		j.PaymentID,
	)

	if err := sender.Send(ctx, j.Email, subject, html); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			// Dev mode: no Mailgun credentials. Log and move on instead of
			// burning retries.
			logger.Warn("notifications: mailer not configured, skipping", "payment_id", j.PaymentID)
			return nil
		}
		metrics.NotificationFailures.Inc()
		return err
	}
	return nil
}

// Dispatcher queues order notifications. It satisfies the settlement
// service's notifier dependency.
type Dispatcher struct{}

// OrderSettled enqueues a confirmation email for a freshly settled payment.
func (Dispatcher) OrderSettled(email, paymentID string) error {
	if err := queue.Dispatch(&OrderConfirmationJob{Email: email, PaymentID: paymentID}); err != nil {
		return fmt.Errorf("notifications: dispatch confirmation: %w", err)
	}
	logger.Debug("notifications: confirmation queued", "payment_id", paymentID)
	return nil
}
