// Package payment wraps the payment gateway behind a narrow contract:
// create a charge intent for an amount in minor units, get back the
// client secret the frontend needs to confirm the charge.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrInvalidAmount is returned for non-positive or non-finite prices.
var ErrInvalidAmount = errors.New("payment: amount must be a positive finite number")

// ToMinorUnits converts a decimal price into the smallest currency unit
// (cents). The fraction below one minor unit is truncated, never rounded
// up: charging less than the displayed price is acceptable, charging more
// is not.
//
// The nudge before truncating absorbs binary float representation error,
// so a display price like 19.99 (whose float product is 1998.999…) still
// converts to 1999 while a genuine sub-cent fraction such as 0.999 stays
// truncated to 99.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	return int64(math.Trunc(price*100 + 1e-6)), nil
}

// Gateway creates charge intents. Substituted with a fake in tests.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64) (clientSecret string, err error)
}

// StripeGateway is the production Gateway backed by Stripe PaymentIntents.
type StripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway builds a gateway charging in the given fixed currency.
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, currency: currency}
}

// CreateIntent requests a card charge intent for amountMinor.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("payment: create intent: %w", err)
	}
	return intent.ClientSecret, nil
}
