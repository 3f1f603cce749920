// services/payments.go
package services

import (
	"math"
	"os"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// PaymentIntent is the subset of the provider response the app needs:
// the intent id for later refunds and the client secret the frontend
// uses to confirm the payment.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// PaymentProvider abstracts the hosted payment API. Two operations are
// consumed: creating an intent and refunding one.
type PaymentProvider interface {
	CreateIntent(amountMinor int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	CreateRefund(intentID, reason string) (string, error)
}

// Payments is the provider used by the controllers; main wires the
// Stripe implementation, tests substitute a stub.
var Payments PaymentProvider

type StripeProvider struct{}

func NewStripeProvider() *StripeProvider {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &StripeProvider{}
}

func (p *StripeProvider) CreateIntent(amountMinor int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (p *StripeProvider) CreateRefund(intentID, reason string) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.AddMetadata("reason", reason)

	r, err := refund.New(params)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

// MinorUnits converts a decimal amount to the provider's minor
// currency units (amount x 100, rounded).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
