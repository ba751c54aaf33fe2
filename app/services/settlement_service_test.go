package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/payment"
)

type fakeLedger struct {
	records []models.Payment
	failErr error
}

func (f *fakeLedger) Insert(_ context.Context, p *models.Payment) (primitive.ObjectID, error) {
	if f.failErr != nil {
		return primitive.NilObjectID, f.failErr
	}
	id := primitive.NewObjectID()
	p.ID = id
	f.records = append(f.records, *p)
	return id, nil
}

// fakeCarts emulates the ownership-scoped deletion filter: a row is
// removed only when both its id is listed and its owner matches.
type fakeCarts struct {
	owners  map[primitive.ObjectID]string // cart id → owner email
	failErr error
}

func (f *fakeCarts) DeleteOwned(_ context.Context, ids []primitive.ObjectID, email string) (int64, error) {
	if f.failErr != nil {
		return 0, f.failErr
	}
	var deleted int64
	for _, id := range ids {
		if f.owners[id] == email {
			delete(f.owners, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeGateway struct {
	gotAmount int64
	secret    string
	failErr   error
	calls     int
}

func (f *fakeGateway) CreateIntent(_ context.Context, amountMinor int64) (string, error) {
	f.calls++
	f.gotAmount = amountMinor
	if f.failErr != nil {
		return "", f.failErr
	}
	return f.secret, nil
}

type fakeNotifier struct {
	paymentIDs []string
	failErr    error
}

func (f *fakeNotifier) OrderSettled(_, paymentID string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.paymentIDs = append(f.paymentIDs, paymentID)
	return nil
}

func newSettlement(ledger *fakeLedger, carts *fakeCarts, gw *fakeGateway, n *fakeNotifier) *SettlementService {
	if ledger == nil {
		ledger = &fakeLedger{}
	}
	if carts == nil {
		carts = &fakeCarts{owners: map[primitive.ObjectID]string{}}
	}
	if gw == nil {
		gw = &fakeGateway{secret: "cs_test"}
	}
	if n == nil {
		n = &fakeNotifier{}
	}
	return NewSettlementService(ledger, carts, gw, n)
}

func paymentFor(email string, cartIDs ...primitive.ObjectID) *models.Payment {
	refs := make([]string, len(cartIDs))
	for i, id := range cartIDs {
		refs[i] = id.Hex()
	}
	return &models.Payment{
		Email:         email,
		Price:         25.5,
		CartIDs:       refs,
		MenuIDs:       []string{primitive.NewObjectID().Hex()},
		TransactionID: "pi_123",
		Status:        "succeeded",
	}
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	gw := &fakeGateway{secret: "cs_abc"}
	s := newSettlement(nil, nil, gw, nil)

	secret, err := s.CreateIntent(context.Background(), 19.99)
	require.NoError(t, err)
	assert.Equal(t, "cs_abc", secret)
	assert.Equal(t, int64(1999), gw.gotAmount)
}

func TestCreateIntentRejectsInvalidPrice(t *testing.T) {
	gw := &fakeGateway{}
	s := newSettlement(nil, nil, gw, nil)

	_, err := s.CreateIntent(context.Background(), -5)
	assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	assert.Zero(t, gw.calls, "gateway must not be called for an invalid amount")
}

func TestSettleHappyPath(t *testing.T) {
	c1 := primitive.NewObjectID()
	c2 := primitive.NewObjectID()
	other := primitive.NewObjectID()

	ledger := &fakeLedger{}
	carts := &fakeCarts{owners: map[primitive.ObjectID]string{
		c1:    "a@x.com",
		c2:    "a@x.com",
		other: "a@x.com", // in the cart but not part of this settlement
	}}
	notifier := &fakeNotifier{}
	s := newSettlement(ledger, carts, nil, notifier)

	result, err := s.Settle(context.Background(), paymentFor("a@x.com", c1, c2))
	require.NoError(t, err)

	assert.Len(t, ledger.records, 1)
	assert.Equal(t, int64(2), result.DeletedCount)
	assert.Equal(t, ledger.records[0].ID.Hex(), result.PaymentID)

	// Only the listed rows are gone.
	assert.NotContains(t, carts.owners, c1)
	assert.NotContains(t, carts.owners, c2)
	assert.Contains(t, carts.owners, other)

	require.Len(t, notifier.paymentIDs, 1)
	assert.Equal(t, result.PaymentID, notifier.paymentIDs[0])
}

func TestSettleSkipsRowsOwnedByOthers(t *testing.T) {
	mine := primitive.NewObjectID()
	theirs := primitive.NewObjectID()

	carts := &fakeCarts{owners: map[primitive.ObjectID]string{
		mine:   "a@x.com",
		theirs: "b@x.com",
	}}
	s := newSettlement(nil, carts, nil, nil)

	// The request lists someone else's cart row; it must survive.
	result, err := s.Settle(context.Background(), paymentFor("a@x.com", mine, theirs))
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.DeletedCount)
	assert.Contains(t, carts.owners, theirs)
}

func TestSettleLedgerFailureAbortsBeforeCartMutation(t *testing.T) {
	c1 := primitive.NewObjectID()

	ledger := &fakeLedger{failErr: errors.New("write concern failure")}
	carts := &fakeCarts{owners: map[primitive.ObjectID]string{c1: "a@x.com"}}
	notifier := &fakeNotifier{}
	s := newSettlement(ledger, carts, nil, notifier)

	_, err := s.Settle(context.Background(), paymentFor("a@x.com", c1))
	require.Error(t, err)

	assert.Contains(t, carts.owners, c1, "cart must be untouched when the ledger write fails")
	assert.Empty(t, notifier.paymentIDs, "no confirmation for an unrecorded payment")
}

func TestSettleTwiceIsNotIdempotent(t *testing.T) {
	c1 := primitive.NewObjectID()
	c2 := primitive.NewObjectID()

	ledger := &fakeLedger{}
	carts := &fakeCarts{owners: map[primitive.ObjectID]string{
		c1: "a@x.com",
		c2: "a@x.com",
	}}
	s := newSettlement(ledger, carts, nil, nil)

	first, err := s.Settle(context.Background(), paymentFor("a@x.com", c1, c2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.DeletedCount)

	second, err := s.Settle(context.Background(), paymentFor("a@x.com", c1, c2))
	require.NoError(t, err)

	// Second submission: fresh ledger record, nothing left to delete.
	assert.Len(t, ledger.records, 2)
	assert.Equal(t, int64(0), second.DeletedCount)
}

func TestSettleRejectsMalformedCartID(t *testing.T) {
	ledger := &fakeLedger{}
	s := newSettlement(ledger, nil, nil, nil)

	p := paymentFor("a@x.com")
	p.CartIDs = []string{"not-an-object-id"}

	_, err := s.Settle(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidCartID)
	assert.Empty(t, ledger.records, "malformed requests are rejected before any write")
}

func TestSettleCartCleanupFailureDoesNotFailRequest(t *testing.T) {
	c1 := primitive.NewObjectID()

	ledger := &fakeLedger{}
	carts := &fakeCarts{
		owners:  map[primitive.ObjectID]string{c1: "a@x.com"},
		failErr: errors.New("socket timeout"),
	}
	s := newSettlement(ledger, carts, nil, nil)

	result, err := s.Settle(context.Background(), paymentFor("a@x.com", c1))
	require.NoError(t, err, "the settled payment stands even when cleanup fails")

	assert.Len(t, ledger.records, 1)
	assert.Equal(t, int64(0), result.DeletedCount)
}

func TestSettleNotifierFailureDoesNotBlock(t *testing.T) {
	c1 := primitive.NewObjectID()

	carts := &fakeCarts{owners: map[primitive.ObjectID]string{c1: "a@x.com"}}
	notifier := &fakeNotifier{failErr: errors.New("smtp down")}
	s := newSettlement(nil, carts, nil, notifier)

	result, err := s.Settle(context.Background(), paymentFor("a@x.com", c1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount, "cart cleanup proceeds despite delivery failure")
}
