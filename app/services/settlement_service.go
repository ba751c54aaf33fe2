package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/payment"
)

// ErrInvalidCartID is returned when a settlement request carries a cart
// reference that is not a valid ObjectID hex string. The request is
// rejected before any write.
var ErrInvalidCartID = errors.New("settlement: invalid cart id")

// Ledger is the append-only payment store.
type Ledger interface {
	Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error)
}

// CartCleaner deletes exactly the listed cart lines owned by email.
type CartCleaner interface {
	DeleteOwned(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error)
}

// Notifier dispatches the best-effort order confirmation.
type Notifier interface {
	OrderSettled(email, paymentID string) error
}

// SettlementResult reports what a successful settlement did.
type SettlementResult struct {
	PaymentID    string `json:"paymentId"`
	DeletedCount int64  `json:"deletedCount"`
}

// SettlementService orchestrates payment settlement: gateway intent
// creation, the authoritative ledger write, cart cleanup, and the customer
// notification.
type SettlementService struct {
	ledger  Ledger
	carts   CartCleaner
	gateway payment.Gateway
	notify  Notifier
}

func NewSettlementService(ledger Ledger, carts CartCleaner, gateway payment.Gateway, notify Notifier) *SettlementService {
	return &SettlementService{ledger: ledger, carts: carts, gateway: gateway, notify: notify}
}

// CreateIntent converts the decimal price into minor units and requests a
// charge intent from the gateway, returning the client secret.
func (s *SettlementService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount, err := payment.ToMinorUnits(price)
	if err != nil {
		return "", err
	}
	return s.gateway.CreateIntent(ctx, amount)
}

// Settle durably records the payment and clears its originating cart lines.
//
// Ordering matters: the ledger insert happens first and is authoritative —
// if it fails nothing else runs and no cart row is touched. After a
// successful insert the confirmation is dispatched fire-and-forget and the
// cart lines are deleted; a cleanup failure is logged and counted but never
// surfaced to the caller, because the financial record already stands.
//
// There is no idempotency key. Submitting the same request twice appends a
// second ledger record; the repeated cart deletion is a no-op.
func (s *SettlementService) Settle(ctx context.Context, p *models.Payment) (SettlementResult, error) {
	cartIDs, err := parseObjectIDs(p.CartIDs)
	if err != nil {
		metrics.SettlementsTotal.WithLabelValues("invalid_request").Inc()
		return SettlementResult{}, err
	}

	paymentID, err := s.ledger.Insert(ctx, p)
	if err != nil {
		metrics.SettlementsTotal.WithLabelValues("ledger_error").Inc()
		return SettlementResult{}, fmt.Errorf("settlement: ledger insert: %w", err)
	}

	// Best-effort side effect, dispatched only after the authoritative
	// write. Failures land in the notification sink, not here.
	if err := s.notify.OrderSettled(p.Email, paymentID.Hex()); err != nil {
		logger.WithCtx(ctx).Error("settlement: confirmation dispatch failed",
			"payment_id", paymentID.Hex(), "error", err)
	}

	deleted, err := s.carts.DeleteOwned(ctx, cartIDs, p.Email)
	if err != nil {
		// The payment is settled; the residual cart rows are an accepted
		// consistency gap surfaced through this counter.
		metrics.CartCleanupFailures.Inc()
		logger.WithCtx(ctx).Error("settlement: cart cleanup failed",
			"payment_id", paymentID.Hex(), "error", err)
		deleted = 0
	}

	metrics.SettlementsTotal.WithLabelValues("settled").Inc()
	return SettlementResult{PaymentID: paymentID.Hex(), DeletedCount: deleted}, nil
}

// parseObjectIDs converts opaque hex references into native ObjectIDs.
// Any malformed entry fails the whole conversion.
func parseObjectIDs(refs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(refs))
	for _, ref := range refs {
		id, err := primitive.ObjectIDFromHex(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCartID, ref)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
