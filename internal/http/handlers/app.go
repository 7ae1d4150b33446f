package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"funnel/internal/checkout"
	"funnel/internal/domain"
	"funnel/internal/infra"
	"funnel/internal/infra/geoip"
)

// CheckoutService is the slice of the checkout core the HTTP layer needs.
type CheckoutService interface {
	CreatePendingPurchase(ctx context.Context, email, name string, amountDollars float64) (*domain.Purchase, error)
	OpenPaymentIntent(ctx context.Context, purchase *domain.Purchase) (string, error)
	ApplyDonation(ctx context.Context, intentID string, donationDollars float64) (float64, string, error)
	ConfirmAndFulfill(ctx context.Context, intentID string) (*domain.Purchase, error)
	ResolveDownload(ctx context.Context, token string) (*domain.Purchase, []domain.PackageItem, error)
}

// WebhookVerifier authenticates an inbound processor webhook and extracts the
// event type plus the payment intent id it refers to.
type WebhookVerifier func(payload []byte, sigHeader string) (eventType, intentID string, err error)

// App is the handler container: every route is a method on it.
type App struct {
	Checkout     CheckoutService
	Leads        domain.EmailLeadRepository
	Testimonials domain.TestimonialRepository
	PackageItems domain.PackageItemRepository
	Purchases    domain.PurchaseRepository
	Analytics    domain.AnalyticsRepository
	Emailer      checkout.Emailer
	Geo          geoip.CountryResolver
	Webhook      WebhookVerifier
	Currency     string
	Logger       infra.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"type": kind, "message": message})
}

// domainError maps sentinel errors from the core onto the wire taxonomy.
// Validation and duplicate guards are the caller's fault and not retryable;
// processor failures are retryable and say so.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "validation_error", "Invalid request. Please check your input.")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "Not found")
	case errors.Is(err, domain.ErrDuplicateOperation):
		a.error(w, http.StatusBadRequest, "duplicate_operation", "This action was already applied.")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", "Conflicting request.")
	case errors.Is(err, domain.ErrPaymentNotComplete):
		a.error(w, http.StatusPaymentRequired, "payment_not_complete", "Payment has not completed yet.")
	case errors.Is(err, domain.ErrPaymentProcessor):
		a.error(w, http.StatusBadGateway, "payment_processor_error", "Payment service is unavailable. Please try again.")
	case errors.Is(err, domain.ErrAccessDenied):
		a.error(w, http.StatusForbidden, "access_denied", "Not available yet.")
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "Something went wrong.")
	}
}
