package checkout

import "context"

// IntentStatusSucceeded is the processor's authoritative "paid" status.
const IntentStatusSucceeded = "succeeded"

// Intent mirrors the processor-side payment intent fields the funnel uses.
type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Status       string
}

// PaymentProcessor is the outbound contract with the payment provider. Every
// call is one HTTPS round trip; failures surface as domain.ErrPaymentProcessor
// wrapped errors and leave local state untouched.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	UpdateIntentAmount(ctx context.Context, intentID string, amountCents int64) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}

// Emailer is the outbound contract with the email-automation service.
// Subscribe adds a contact to the marketing list; TagPurchase triggers the
// fulfillment sequence. Both are fire-and-forget from the caller's view: a
// failed call is logged, never retried synchronously.
type Emailer interface {
	Subscribe(ctx context.Context, email, name string) error
	TagPurchase(ctx context.Context, email, name string) error
}
