package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"funnel/internal/domain"
	"funnel/internal/infra"
)

// Service drives the purchase-and-fulfillment state machine: pending purchase
// creation, the one-shot donation upsell, payment confirmation with token
// issuance, and the token-gated download resolution.
type Service struct {
	purchases domain.PurchaseRepository
	items     domain.PackageItemRepository
	analytics domain.AnalyticsRepository
	processor PaymentProcessor
	emailer   Emailer
	tiers     map[int64]struct{}
	currency  string
	logger    infra.Logger
}

// Options wires the service's collaborators. DonationTiersCents is the
// sanctioned set of upsell amounts; anything else fails validation.
type Options struct {
	Purchases          domain.PurchaseRepository
	PackageItems       domain.PackageItemRepository
	Analytics          domain.AnalyticsRepository
	Processor          PaymentProcessor
	Emailer            Emailer
	DonationTiersCents []int64
	Currency           string
	Logger             infra.Logger
}

// NewService constructs the checkout service.
func NewService(opts Options) *Service {
	tiers := make(map[int64]struct{}, len(opts.DonationTiersCents))
	for _, cents := range opts.DonationTiersCents {
		tiers[cents] = struct{}{}
	}
	currency := opts.Currency
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		purchases: opts.Purchases,
		items:     opts.PackageItems,
		analytics: opts.Analytics,
		processor: opts.Processor,
		emailer:   opts.Emailer,
		tiers:     tiers,
		currency:  currency,
		logger:    opts.Logger,
	}
}

// CreatePendingPurchase validates the input and inserts a pending purchase
// with no donation and no processor reference yet.
func (s *Service) CreatePendingPurchase(ctx context.Context, email, name string, amountDollars float64) (*domain.Purchase, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if amountDollars <= 0 || math.IsNaN(amountDollars) || math.IsInf(amountDollars, 0) {
		return nil, fmt.Errorf("amount must be a positive number: %w", domain.ErrValidation)
	}
	purchase := &domain.Purchase{
		ID:          uuid.NewString(),
		Email:       email,
		Name:        strings.TrimSpace(name),
		AmountCents: domain.DollarsToCents(amountDollars),
		Currency:    s.currency,
		Status:      domain.PurchaseStatusPending,
	}
	return s.purchases.Create(ctx, purchase)
}

// OpenPaymentIntent stands up a processor intent for the purchase's base
// amount and attaches its id to the purchase. A processor failure leaves the
// purchase pending with no reference attached, so the caller may retry.
func (s *Service) OpenPaymentIntent(ctx context.Context, purchase *domain.Purchase) (string, error) {
	intent, err := s.processor.CreateIntent(ctx, purchase.AmountCents, purchase.Currency, map[string]string{
		"purchase_id": purchase.ID,
		"email":       purchase.Email,
	})
	if err != nil {
		return "", err
	}
	if err := s.purchases.AttachPaymentIntent(ctx, purchase.ID, intent.ID); err != nil {
		return "", err
	}
	purchase.PaymentIntentID = &intent.ID
	return intent.ClientSecret, nil
}

// ApplyDonation layers exactly one sanctioned top-up onto a pending purchase.
// The donation-already-applied guard runs twice: a fast check before the
// processor call, and the conditional update that actually decides a race.
func (s *Service) ApplyDonation(ctx context.Context, intentID string, donationDollars float64) (float64, string, error) {
	donationCents := domain.DollarsToCents(donationDollars)
	if _, ok := s.tiers[donationCents]; !ok {
		return 0, "", fmt.Errorf("donation amount is not one of the offered options: %w", domain.ErrValidation)
	}

	purchase, err := s.purchases.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return 0, "", err
	}
	if purchase.DonationCents > 0 {
		return 0, "", fmt.Errorf("donation already added to this purchase: %w", domain.ErrDuplicateOperation)
	}

	newTotalCents := purchase.AmountCents + donationCents
	intent, err := s.processor.UpdateIntentAmount(ctx, intentID, newTotalCents)
	if err != nil {
		return 0, "", err
	}

	if err := s.purchases.ApplyDonation(ctx, purchase.ID, donationCents); err != nil {
		return 0, "", err
	}
	return domain.CentsToDollars(newTotalCents), intent.ClientSecret, nil
}

// ConfirmAndFulfill finalizes a paid purchase: verifies the processor-side
// status, transitions pending to completed, mints the download token, and
// kicks off delivery. Safe to invoke any number of times for the same intent.
func (s *Service) ConfirmAndFulfill(ctx context.Context, intentID string) (*domain.Purchase, error) {
	purchase, err := s.purchases.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		// A succeeded intent with no local purchase means the processor and
		// this database disagree; nothing automatic can fix that.
		s.logger.Error().Str("payment_intent_id", intentID).Err(err).
			Msg("no purchase for payment intent, manual reconciliation required")
		return nil, err
	}
	if purchase.IsCompleted() {
		return purchase, nil
	}

	// Never trust the caller's word for it, webhook or not.
	intent, err := s.processor.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != IntentStatusSucceeded {
		return nil, fmt.Errorf("intent status is %q: %w", intent.Status, domain.ErrPaymentNotComplete)
	}

	token, err := NewDownloadToken()
	if err != nil {
		return nil, err
	}
	won, err := s.purchases.MarkCompleted(ctx, purchase.ID, token)
	if err != nil {
		return nil, err
	}
	purchase, err = s.purchases.GetByID(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		// A concurrent confirmation completed the purchase and issued the
		// token; fulfillment side effects already ran there.
		return purchase, nil
	}

	delivered := true
	if err := s.emailer.TagPurchase(ctx, purchase.Email, purchase.Name); err != nil {
		delivered = false
		// The payment is captured; completion stands no matter what. This log
		// is the page: the customer paid and the delivery trigger failed.
		s.logger.Error().
			Str("purchase_id", purchase.ID).
			Str("email", purchase.Email).
			Err(err).
			Msg("purchase completed but delivery notification failed, manual delivery required")
	}
	if err := s.emailer.Subscribe(ctx, purchase.Email, purchase.Name); err != nil {
		s.logger.Warn().Str("email", purchase.Email).Err(err).Msg("post-purchase list subscribe failed")
	}

	s.trackPurchase(ctx, purchase, delivered)
	return purchase, nil
}

// ResolveDownload exchanges a download token for the purchase and the
// currently visible package contents. The HTTP layer renders every error from
// here as the same generic message; this method still distinguishes them for
// logging and tests.
func (s *Service) ResolveDownload(ctx context.Context, token string) (*domain.Purchase, []domain.PackageItem, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, domain.ErrNotFound
	}
	purchase, err := s.purchases.GetByDownloadToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if !purchase.IsCompleted() {
		return nil, nil, fmt.Errorf("purchase %s is not completed: %w", purchase.ID, domain.ErrAccessDenied)
	}
	items, err := s.items.ListVisible(ctx)
	if err != nil {
		return nil, nil, err
	}
	return purchase, items, nil
}

func (s *Service) trackPurchase(ctx context.Context, purchase *domain.Purchase, delivered bool) {
	data, err := json.Marshal(map[string]any{
		"purchase_id":      purchase.ID,
		"amount":           domain.CentsToDollars(purchase.AmountCents),
		"donation":         domain.CentsToDollars(purchase.DonationCents),
		"delivery_success": delivered,
	})
	if err != nil {
		return
	}
	event := &domain.AnalyticsEvent{
		ID:        uuid.NewString(),
		EventType: domain.EventPurchase,
		EventData: data,
	}
	if _, err := s.analytics.Track(ctx, event); err != nil {
		s.logger.Warn().Str("purchase_id", purchase.ID).Err(err).Msg("failed to record purchase event")
	}
}
