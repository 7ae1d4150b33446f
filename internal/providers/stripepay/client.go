package stripepay

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"

	"funnel/internal/checkout"
	"funnel/internal/domain"
)

// Client talks to the Stripe payment intents API. Charges are card-only
// one-time payments; the intent amount stays mutable until confirmation, which
// is what lets the donation upsell retarget an open intent.
type Client struct {
	sc       *stripe.Client
	currency string
}

// NewClient constructs a Stripe-backed payment processor.
func NewClient(secretKey, currency string) (*Client, error) {
	if secretKey == "" {
		return nil, errors.New("stripepay: secret key is required")
	}
	if currency == "" {
		currency = "usd"
	}
	return &Client{sc: stripe.NewClient(secretKey), currency: currency}, nil
}

// CreateIntent opens a new payment intent for the given amount in minor units.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*checkout.Intent, error) {
	if currency == "" {
		currency = c.currency
	}
	params := &stripe.PaymentIntentCreateParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if len(metadata) > 0 {
		params.Metadata = metadata
	}
	intent, err := c.sc.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, wrapStripeError("create intent", err)
	}
	return fromStripeIntent(intent), nil
}

// UpdateIntentAmount retargets an open intent to a new total in minor units.
func (c *Client) UpdateIntentAmount(ctx context.Context, intentID string, amountCents int64) (*checkout.Intent, error) {
	intent, err := c.sc.V1PaymentIntents.Update(ctx, intentID, &stripe.PaymentIntentUpdateParams{
		Amount: stripe.Int64(amountCents),
	})
	if err != nil {
		return nil, wrapStripeError("update intent", err)
	}
	return fromStripeIntent(intent), nil
}

// RetrieveIntent fetches the authoritative state of an intent.
func (c *Client) RetrieveIntent(ctx context.Context, intentID string) (*checkout.Intent, error) {
	intent, err := c.sc.V1PaymentIntents.Retrieve(ctx, intentID, nil)
	if err != nil {
		return nil, wrapStripeError("retrieve intent", err)
	}
	return fromStripeIntent(intent), nil
}

func fromStripeIntent(intent *stripe.PaymentIntent) *checkout.Intent {
	return &checkout.Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.Amount,
		Status:       string(intent.Status),
	}
}

func wrapStripeError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("stripepay: %s: %s: %w", op, stripeErr.Msg, domain.ErrPaymentProcessor)
	}
	return fmt.Errorf("stripepay: %s: %v: %w", op, err, domain.ErrPaymentProcessor)
}

var _ checkout.PaymentProcessor = (*Client)(nil)
