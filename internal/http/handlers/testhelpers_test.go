package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"funnel/internal/domain"
)

func newTestApp(checkout *fakeCheckout) *App {
	return &App{
		Checkout: checkout,
		Leads:    newFakeLeads(),
		Emailer:  &recordingEmailer{},
		Currency: "usd",
		Logger:   zerolog.Nop(),
	}
}

// fakeCheckout scripts the checkout core per intent id so handler tests
// exercise only the HTTP mapping.
type fakeCheckout struct {
	mu         sync.Mutex
	nextSecret string
	createErr  error
	intentErr  error

	donationTotal  float64
	donationErr    error
	donationCalls  int
	confirmErr     error
	confirmCalls   []string
	confirmResult  *domain.Purchase
	downloadErr    error
	downloadResult *domain.Purchase
	downloadItems  []domain.PackageItem
}

func (f *fakeCheckout) CreatePendingPurchase(_ context.Context, email, name string, amountDollars float64) (*domain.Purchase, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if email == "" || amountDollars <= 0 {
		return nil, fmt.Errorf("bad input: %w", domain.ErrValidation)
	}
	return &domain.Purchase{
		ID:          "purchase-1",
		Email:       email,
		Name:        name,
		AmountCents: domain.DollarsToCents(amountDollars),
		Currency:    "usd",
		Status:      domain.PurchaseStatusPending,
	}, nil
}

func (f *fakeCheckout) OpenPaymentIntent(_ context.Context, _ *domain.Purchase) (string, error) {
	if f.intentErr != nil {
		return "", f.intentErr
	}
	if f.nextSecret == "" {
		return "pi_test_secret", nil
	}
	return f.nextSecret, nil
}

func (f *fakeCheckout) ApplyDonation(_ context.Context, intentID string, _ float64) (float64, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.donationCalls++
	if f.donationErr != nil {
		return 0, "", f.donationErr
	}
	return f.donationTotal, "pi_test_secret", nil
}

func (f *fakeCheckout) ConfirmAndFulfill(_ context.Context, intentID string) (*domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmCalls = append(f.confirmCalls, intentID)
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	if f.confirmResult != nil {
		return f.confirmResult, nil
	}
	token := "tok_test"
	return &domain.Purchase{
		ID:            "purchase-1",
		Email:         "buyer@example.com",
		AmountCents:   495,
		Currency:      "usd",
		Status:        domain.PurchaseStatusCompleted,
		DownloadToken: &token,
	}, nil
}

func (f *fakeCheckout) ResolveDownload(_ context.Context, token string) (*domain.Purchase, []domain.PackageItem, error) {
	if f.downloadErr != nil {
		return nil, nil, f.downloadErr
	}
	return f.downloadResult, f.downloadItems, nil
}

type fakeLeads struct {
	mu    sync.Mutex
	byKey map[string]*domain.EmailLead
}

func newFakeLeads() *fakeLeads {
	return &fakeLeads{byKey: map[string]*domain.EmailLead{}}
}

func (f *fakeLeads) Upsert(_ context.Context, lead *domain.EmailLead) (*domain.EmailLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byKey[lead.Email]; ok {
		existing.Name = lead.Name
		existing.Source = lead.Source
		cp := *existing
		return &cp, nil
	}
	cp := *lead
	f.byKey[lead.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeLeads) GetByEmail(_ context.Context, email string) (*domain.EmailLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lead, ok := f.byKey[email]; ok {
		cp := *lead
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLeads) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byKey)), nil
}

type recordingEmailer struct {
	mu           sync.Mutex
	subscribed   []string
	subscribeErr error
}

func (r *recordingEmailer) Subscribe(_ context.Context, email, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribed = append(r.subscribed, email)
	return r.subscribeErr
}

func (r *recordingEmailer) TagPurchase(context.Context, string, string) error {
	return errors.New("not used in handler tests")
}
