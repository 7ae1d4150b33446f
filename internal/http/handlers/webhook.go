package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82/webhook"
)

// webhookBodyLimit caps inbound webhook payloads at 1MiB.
const webhookBodyLimit = 1 << 20

const eventPaymentIntentSucceeded = "payment_intent.succeeded"

// StripeVerifier builds a WebhookVerifier that checks the Stripe-Signature
// header against the endpoint secret. Signature verification is the only
// authentication this endpoint has.
func StripeVerifier(secret string) WebhookVerifier {
	return func(payload []byte, sigHeader string) (string, string, error) {
		event, err := webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
		if err != nil {
			return "", "", err
		}
		var object struct {
			ID string `json:"id"`
		}
		if len(event.Data.Raw) > 0 {
			_ = json.Unmarshal(event.Data.Raw, &object)
		}
		return string(event.Type), object.ID, nil
	}
}

// StripeWebhook handles asynchronous payment confirmations. Handled events
// always answer 200 with failures logged instead of surfaced, so a permanent
// local failure cannot put the processor into an infinite redelivery loop.
// An unverifiable signature is an auth failure and still gets a 400.
func (a *App) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, webhookBodyLimit)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if strings.TrimSpace(sigHeader) == "" {
		a.error(w, http.StatusBadRequest, "invalid_signature", "invalid signature")
		return
	}
	eventType, intentID, err := a.Webhook(payload, sigHeader)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_signature", "invalid signature")
		return
	}

	if eventType == eventPaymentIntentSucceeded && intentID != "" {
		if _, err := a.Checkout.ConfirmAndFulfill(r.Context(), intentID); err != nil {
			a.Logger.Error().
				Str("payment_intent_id", intentID).
				Str("event_type", eventType).
				Err(err).
				Msg("webhook fulfillment failed")
		}
	}

	a.json(w, http.StatusOK, map[string]bool{"received": true})
}
