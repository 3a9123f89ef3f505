// Package payments turns an order price into a Stripe PaymentIntent and
// hands back the client secret the storefront needs to confirm the charge.
package payments

import (
	"context"
	"errors"
	"math"

	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

const Currency = stripe.CurrencyUSD

// IntentCreator is satisfied by *paymentintent.Client.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type StripeGateway struct {
	intents IntentCreator
}

// NewStripeGateway returns a gateway using secretKey. Network retries are
// disabled; a failed call is reported to the caller as-is. An empty key
// yields a gateway that rejects every request.
func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey == "" {
		return &StripeGateway{}
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
	})
	return &StripeGateway{intents: &paymentintent.Client{B: backend, Key: secretKey}}
}

func NewGateway(intents IntentCreator) *StripeGateway {
	return &StripeGateway{intents: intents}
}

// ToMinorUnits converts a USD price into cents, rounding to the nearest cent
// so 49.99 becomes 4999.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, apperror.Invalidf("payments.ToMinorUnits", "price must be a positive number")
	}
	amount := math.Round(price * 100)
	if amount < 1 || amount > math.MaxInt64/2 {
		return 0, apperror.Invalidf("payments.ToMinorUnits", "price %v is out of range", price)
	}
	return int64(amount), nil
}

// CreateIntent requests a card-payable intent for price and returns its
// client secret. No idempotency key is sent, so a retried call creates a
// second intent.
func (g *StripeGateway) CreateIntent(ctx context.Context, price float64) (string, error) {
	const op = "payments.CreateIntent"
	amount, err := ToMinorUnits(price)
	if err != nil {
		return "", err
	}
	if g.intents == nil {
		return "", apperror.New(apperror.KindPaymentProvider, op, "payment provider is not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(Currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.intents.New(params)
	if err != nil {
		return "", providerError(op, err)
	}
	if pi == nil || pi.ClientSecret == "" {
		return "", apperror.New(apperror.KindPaymentProvider, op, "payment provider returned no client secret")
	}
	return pi.ClientSecret, nil
}

func providerError(op string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return &apperror.Error{Kind: apperror.KindPaymentProvider, Op: op, Msg: se.Msg, Err: err}
	}
	return apperror.Wrap(apperror.KindPaymentProvider, op, err)
}
