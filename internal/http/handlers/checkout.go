package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"funnel/internal/domain"
)

type createPaymentIntentRequest struct {
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CreatePaymentIntent begins a checkout session: a pending purchase plus an
// open processor intent. The client completes payment against the returned
// client secret.
func (a *App) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createPaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}

	purchase, err := a.Checkout.CreatePendingPurchase(r.Context(), req.Email, req.Name, req.Amount)
	if err != nil {
		a.domainError(w, err)
		return
	}
	clientSecret, err := a.Checkout.OpenPaymentIntent(r.Context(), purchase)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"clientSecret": clientSecret})
}

type updatePaymentIntentRequest struct {
	PaymentIntentID string  `json:"paymentIntentId"`
	DonationAmount  float64 `json:"donationAmount"`
}

// UpdatePaymentIntent applies the one optional donation upsell to an open
// checkout. Firing it twice for the same intent is a duplicate, not a second
// charge.
func (a *App) UpdatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req updatePaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}
	if strings.TrimSpace(req.PaymentIntentID) == "" {
		a.error(w, http.StatusBadRequest, "validation_error", "paymentIntentId is required")
		return
	}

	newTotal, clientSecret, err := a.Checkout.ApplyDonation(r.Context(), req.PaymentIntentID, req.DonationAmount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			a.error(w, http.StatusBadRequest, "validation_error", "Invalid donation amount. Please select a valid option.")
		case errors.Is(err, domain.ErrDuplicateOperation):
			a.error(w, http.StatusBadRequest, "duplicate_donation", "Donation already added to this purchase.")
		case errors.Is(err, domain.ErrPaymentProcessor):
			a.error(w, http.StatusBadRequest, "stripe_error", "Unable to update payment. Please start checkout again.")
		default:
			a.domainError(w, err)
		}
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":      true,
		"newTotal":     newTotal,
		"clientSecret": clientSecret,
	})
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// ConfirmPayment is the explicit client-initiated confirmation path. The
// processor's view of the intent decides; the caller's assertion never does.
func (a *App) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}
	if strings.TrimSpace(req.PaymentIntentID) == "" {
		a.error(w, http.StatusBadRequest, "validation_error", "paymentIntentId is required")
		return
	}

	purchase, err := a.Checkout.ConfirmAndFulfill(r.Context(), req.PaymentIntentID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"purchase": viewPurchase(purchase)})
}
