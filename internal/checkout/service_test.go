package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"funnel/internal/domain"
)

func newTestService(t *testing.T) (*Service, *fakePurchaseRepo, *fakeProcessor, *fakeEmailer, *fakeAnalytics) {
	t.Helper()
	purchases := newFakePurchaseRepo()
	processor := &fakeProcessor{intents: map[string]*Intent{}}
	emailer := &fakeEmailer{}
	analytics := &fakeAnalytics{}
	svc := NewService(Options{
		Purchases:          purchases,
		PackageItems:       &fakePackageItems{},
		Analytics:          analytics,
		Processor:          processor,
		Emailer:            emailer,
		DonationTiersCents: []int64{500, 900, 1000, 1500, 2500, 10000, 20000},
		Currency:           "usd",
		Logger:             zerolog.Nop(),
	})
	return svc, purchases, processor, emailer, analytics
}

func TestCreatePendingPurchase_Defaults(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	purchase, err := svc.CreatePendingPurchase(context.Background(), "buyer@example.com", "Buyer", 4.95)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if purchase.Status != domain.PurchaseStatusPending {
		t.Fatalf("expected pending status, got %q", purchase.Status)
	}
	if purchase.AmountCents != 495 {
		t.Fatalf("expected 495 cents, got %d", purchase.AmountCents)
	}
	if purchase.DonationCents != 0 {
		t.Fatalf("expected zero donation, got %d", purchase.DonationCents)
	}
	if purchase.DownloadToken != nil {
		t.Fatalf("expected no download token on a pending purchase")
	}
	if purchase.PaymentIntentID != nil {
		t.Fatalf("expected no payment intent before one is opened")
	}
}

func TestCreatePendingPurchase_RejectsBadInput(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)

	cases := []struct {
		name   string
		email  string
		amount float64
	}{
		{"empty email", "", 4.95},
		{"email without at sign", "not-an-email", 4.95},
		{"zero amount", "buyer@example.com", 0},
		{"negative amount", "buyer@example.com", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreatePendingPurchase(context.Background(), tc.email, "", tc.amount); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if n := repo.count(); n != 0 {
		t.Fatalf("expected no purchases persisted, got %d", n)
	}
}

func TestOpenPaymentIntent_AttachesReference(t *testing.T) {
	svc, repo, processor, _, _ := newTestService(t)

	purchase, err := svc.CreatePendingPurchase(context.Background(), "buyer@example.com", "Buyer", 4.95)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	secret, err := svc.OpenPaymentIntent(context.Background(), purchase)
	if err != nil {
		t.Fatalf("open intent: %v", err)
	}
	if secret == "" {
		t.Fatal("expected a client secret")
	}
	if processor.created != 1 {
		t.Fatalf("expected 1 intent created, got %d", processor.created)
	}

	stored, err := repo.GetByID(context.Background(), purchase.ID)
	if err != nil {
		t.Fatalf("reload purchase: %v", err)
	}
	if stored.PaymentIntentID == nil || *stored.PaymentIntentID == "" {
		t.Fatal("expected payment intent id attached")
	}
}

func TestOpenPaymentIntent_ProcessorFailureLeavesPurchaseUntouched(t *testing.T) {
	svc, repo, processor, _, _ := newTestService(t)
	processor.createErr = fmt.Errorf("card network down: %w", domain.ErrPaymentProcessor)

	purchase, err := svc.CreatePendingPurchase(context.Background(), "buyer@example.com", "Buyer", 4.95)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	if _, err := svc.OpenPaymentIntent(context.Background(), purchase); !errors.Is(err, domain.ErrPaymentProcessor) {
		t.Fatalf("expected processor error, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), purchase.ID)
	if stored.PaymentIntentID != nil {
		t.Fatal("expected no payment intent attached after processor failure")
	}
	if stored.Status != domain.PurchaseStatusPending {
		t.Fatalf("expected purchase to stay pending, got %q", stored.Status)
	}
}

func TestApplyDonation_AddsTierOnce(t *testing.T) {
	svc, repo, processor, _, _ := newTestService(t)
	purchase, intentID := openPurchase(t, svc, 4.95)

	newTotal, secret, err := svc.ApplyDonation(context.Background(), intentID, 10)
	if err != nil {
		t.Fatalf("apply donation: %v", err)
	}
	if newTotal != 14.95 {
		t.Fatalf("expected new total 14.95, got %v", newTotal)
	}
	if secret == "" {
		t.Fatal("expected a client secret in the donation response")
	}
	if got := processor.intents[intentID].AmountCents; got != 1495 {
		t.Fatalf("expected intent amount 1495, got %d", got)
	}

	stored, _ := repo.GetByID(context.Background(), purchase.ID)
	if stored.DonationCents != 1000 {
		t.Fatalf("expected donation 1000 cents, got %d", stored.DonationCents)
	}
	if stored.TotalCents() != 1495 {
		t.Fatalf("expected total 1495 cents, got %d", stored.TotalCents())
	}
}

func TestApplyDonation_SecondAttemptRejectedWithoutMutation(t *testing.T) {
	svc, repo, processor, _, _ := newTestService(t)
	purchase, intentID := openPurchase(t, svc, 4.95)

	if _, _, err := svc.ApplyDonation(context.Background(), intentID, 10); err != nil {
		t.Fatalf("first donation: %v", err)
	}
	updatesBefore := processor.updated

	if _, _, err := svc.ApplyDonation(context.Background(), intentID, 25); !errors.Is(err, domain.ErrDuplicateOperation) {
		t.Fatalf("expected duplicate-operation error, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), purchase.ID)
	if stored.DonationCents != 1000 {
		t.Fatalf("expected donation unchanged at 1000, got %d", stored.DonationCents)
	}
	if processor.updated != updatesBefore {
		t.Fatal("expected no processor update on a rejected duplicate donation")
	}
}

func TestApplyDonation_UnknownTierRejectedBeforeProcessor(t *testing.T) {
	svc, repo, processor, _, _ := newTestService(t)
	purchase, intentID := openPurchase(t, svc, 4.95)

	if _, _, err := svc.ApplyDonation(context.Background(), intentID, 7.77); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if processor.updated != 0 {
		t.Fatal("expected no processor call for an unknown tier")
	}

	stored, _ := repo.GetByID(context.Background(), purchase.ID)
	if stored.DonationCents != 0 {
		t.Fatalf("expected donation untouched, got %d", stored.DonationCents)
	}
}

func TestApplyDonation_UnknownIntent(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	if _, _, err := svc.ApplyDonation(context.Background(), "pi_missing", 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestConfirmAndFulfill_CompletesAndMintsToken(t *testing.T) {
	svc, _, processor, emailer, analytics := newTestService(t)
	_, intentID := openPurchase(t, svc, 4.95)
	processor.succeed(intentID)

	purchase, err := svc.ConfirmAndFulfill(context.Background(), intentID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !purchase.IsCompleted() {
		t.Fatalf("expected completed status, got %q", purchase.Status)
	}
	if purchase.DownloadToken == nil || *purchase.DownloadToken == "" {
		t.Fatal("expected a download token on completion")
	}
	if emailer.tagged != 1 {
		t.Fatalf("expected 1 purchase tag call, got %d", emailer.tagged)
	}
	if emailer.subscribed != 1 {
		t.Fatalf("expected 1 subscribe call, got %d", emailer.subscribed)
	}
	if analytics.countOf(domain.EventPurchase) != 1 {
		t.Fatal("expected one purchase event tracked")
	}
}

func TestConfirmAndFulfill_Idempotent(t *testing.T) {
	svc, _, processor, emailer, analytics := newTestService(t)
	_, intentID := openPurchase(t, svc, 4.95)
	processor.succeed(intentID)

	first, err := svc.ConfirmAndFulfill(context.Background(), intentID)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	second, err := svc.ConfirmAndFulfill(context.Background(), intentID)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}

	if *first.DownloadToken != *second.DownloadToken {
		t.Fatal("expected the same download token from both confirmations")
	}
	if emailer.tagged != 1 {
		t.Fatalf("expected delivery to run once, got %d tag calls", emailer.tagged)
	}
	if analytics.countOf(domain.EventPurchase) != 1 {
		t.Fatal("expected a single purchase event")
	}
}

func TestConfirmAndFulfill_RejectsUnpaidIntent(t *testing.T) {
	svc, repo, _, emailer, _ := newTestService(t)
	purchase, intentID := openPurchase(t, svc, 4.95)
	// Intent stays in requires_payment_method.

	if _, err := svc.ConfirmAndFulfill(context.Background(), intentID); !errors.Is(err, domain.ErrPaymentNotComplete) {
		t.Fatalf("expected payment-not-complete error, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), purchase.ID)
	if stored.IsCompleted() {
		t.Fatal("purchase must never complete while the intent is unpaid")
	}
	if stored.DownloadToken != nil {
		t.Fatal("expected no download token for an unpaid intent")
	}
	if emailer.tagged != 0 {
		t.Fatal("expected no delivery attempt for an unpaid intent")
	}
}

func TestConfirmAndFulfill_UnknownIntent(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	if _, err := svc.ConfirmAndFulfill(context.Background(), "pi_orphan"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestConfirmAndFulfill_DeliveryFailureDoesNotRollBack(t *testing.T) {
	svc, _, processor, emailer, analytics := newTestService(t)
	_, intentID := openPurchase(t, svc, 4.95)
	processor.succeed(intentID)
	emailer.tagErr = errors.New("convertkit 500")

	purchase, err := svc.ConfirmAndFulfill(context.Background(), intentID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !purchase.IsCompleted() {
		t.Fatal("completion must stand even when delivery fails")
	}
	if purchase.DownloadToken == nil {
		t.Fatal("expected the download token despite delivery failure")
	}
	if analytics.countOf(domain.EventPurchase) != 1 {
		t.Fatal("expected purchase event tracked with delivery failure noted")
	}
}

func TestConfirmAndFulfill_ConcurrentConfirmationsOneToken(t *testing.T) {
	svc, repo, processor, emailer, _ := newTestService(t)
	_, intentID := openPurchase(t, svc, 4.95)
	processor.succeed(intentID)

	const confirms = 8
	tokens := make(chan string, confirms)
	var wg sync.WaitGroup
	for i := 0; i < confirms; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := svc.ConfirmAndFulfill(context.Background(), intentID)
			if err != nil || p.DownloadToken == nil {
				tokens <- ""
				return
			}
			tokens <- *p.DownloadToken
		}()
	}
	wg.Wait()
	close(tokens)

	var token string
	for got := range tokens {
		if got == "" {
			t.Fatal("expected every confirmation to return a completed purchase")
		}
		if token == "" {
			token = got
		} else if got != token {
			t.Fatal("expected every confirmation to observe the same token")
		}
	}
	if repo.completions != 1 {
		t.Fatalf("expected exactly one completion transition, got %d", repo.completions)
	}
	if emailer.tagged != 1 {
		t.Fatalf("expected delivery to run once across racers, got %d", emailer.tagged)
	}
}

func TestResolveDownload(t *testing.T) {
	svc, _, processor, _, _ := newTestService(t)
	_, intentID := openPurchase(t, svc, 4.95)
	processor.succeed(intentID)
	completed, err := svc.ConfirmAndFulfill(context.Background(), intentID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	purchase, items, err := svc.ResolveDownload(context.Background(), *completed.DownloadToken)
	if err != nil {
		t.Fatalf("resolve download: %v", err)
	}
	if purchase.ID != completed.ID {
		t.Fatalf("expected purchase %s, got %s", completed.ID, purchase.ID)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 visible items, got %d", len(items))
	}
}

func TestResolveDownload_UnknownToken(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	for _, token := range []string{"", "   ", "bogus-token"} {
		if _, _, err := svc.ResolveDownload(context.Background(), token); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("token %q: expected not-found error, got %v", token, err)
		}
	}
}

func TestResolveDownload_PendingPurchaseDenied(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	purchase, _ := openPurchase(t, svc, 4.95)

	// A token stored on a purchase that never finished paying must not open
	// the gate.
	token := "leaked-before-completion"
	repo.setToken(purchase.ID, token)

	if _, _, err := svc.ResolveDownload(context.Background(), token); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected access-denied error, got %v", err)
	}
}

// TestFunnel_FullFlowWithDonation walks the happy path end to end: checkout at
// the base price, a donation upsell, payment confirmation, and the download.
func TestFunnel_FullFlowWithDonation(t *testing.T) {
	svc, _, processor, emailer, _ := newTestService(t)

	purchase, err := svc.CreatePendingPurchase(context.Background(), "buyer@example.com", "Buyer", 4.95)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if _, err := svc.OpenPaymentIntent(context.Background(), purchase); err != nil {
		t.Fatalf("open intent: %v", err)
	}
	intentID := *purchase.PaymentIntentID

	newTotal, _, err := svc.ApplyDonation(context.Background(), intentID, 9)
	if err != nil {
		t.Fatalf("apply donation: %v", err)
	}
	if newTotal != 13.95 {
		t.Fatalf("expected total 13.95 after donation, got %v", newTotal)
	}
	if got := processor.intents[intentID].AmountCents; got != 1395 {
		t.Fatalf("expected intent charged 1395 cents, got %d", got)
	}

	processor.succeed(intentID)
	completed, err := svc.ConfirmAndFulfill(context.Background(), intentID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if completed.TotalCents() != 1395 {
		t.Fatalf("expected completed total 1395, got %d", completed.TotalCents())
	}

	resolved, items, err := svc.ResolveDownload(context.Background(), *completed.DownloadToken)
	if err != nil {
		t.Fatalf("resolve download: %v", err)
	}
	if resolved.ID != purchase.ID || len(items) == 0 {
		t.Fatal("expected the download to expose the purchased contents")
	}
	if emailer.tagged != 1 {
		t.Fatalf("expected one delivery trigger, got %d", emailer.tagged)
	}
}

// TestFunnel_FullFlowSkippingDonation confirms the upsell is optional.
func TestFunnel_FullFlowSkippingDonation(t *testing.T) {
	svc, _, processor, _, _ := newTestService(t)

	purchase, err := svc.CreatePendingPurchase(context.Background(), "buyer@example.com", "", 4.95)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if _, err := svc.OpenPaymentIntent(context.Background(), purchase); err != nil {
		t.Fatalf("open intent: %v", err)
	}
	intentID := *purchase.PaymentIntentID
	processor.succeed(intentID)

	completed, err := svc.ConfirmAndFulfill(context.Background(), intentID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if completed.TotalCents() != 495 {
		t.Fatalf("expected total 495 without donation, got %d", completed.TotalCents())
	}
	if _, _, err := svc.ResolveDownload(context.Background(), *completed.DownloadToken); err != nil {
		t.Fatalf("resolve download: %v", err)
	}
}

func openPurchase(t *testing.T, svc *Service, amountDollars float64) (*domain.Purchase, string) {
	t.Helper()
	purchase, err := svc.CreatePendingPurchase(context.Background(), "buyer@example.com", "Buyer", amountDollars)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if _, err := svc.OpenPaymentIntent(context.Background(), purchase); err != nil {
		t.Fatalf("open intent: %v", err)
	}
	return purchase, *purchase.PaymentIntentID
}

// fakePurchaseRepo mirrors the conditional-update semantics of the SQL
// implementation so race-sensitive tests exercise the same guards.
type fakePurchaseRepo struct {
	mu          sync.Mutex
	rows        map[string]*domain.Purchase
	completions int
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{rows: map[string]*domain.Purchase{}}
}

func (f *fakePurchaseRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakePurchaseRepo) setToken(id, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id].DownloadToken = &token
}

func clonePurchase(p *domain.Purchase) *domain.Purchase {
	cp := *p
	if p.PaymentIntentID != nil {
		v := *p.PaymentIntentID
		cp.PaymentIntentID = &v
	}
	if p.DownloadToken != nil {
		v := *p.DownloadToken
		cp.DownloadToken = &v
	}
	return &cp
}

func (f *fakePurchaseRepo) Create(_ context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[purchase.ID] = clonePurchase(purchase)
	return clonePurchase(purchase), nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, id string) (*domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.rows[id]; ok {
		return clonePurchase(p), nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePurchaseRepo) GetByPaymentIntentID(_ context.Context, intentID string) (*domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.PaymentIntentID != nil && *p.PaymentIntentID == intentID {
			return clonePurchase(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePurchaseRepo) GetByDownloadToken(_ context.Context, token string) (*domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.DownloadToken != nil && *p.DownloadToken == token {
			return clonePurchase(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePurchaseRepo) AttachPaymentIntent(_ context.Context, purchaseID, intentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.PaymentIntentID != nil && *p.PaymentIntentID == intentID && p.ID != purchaseID {
			return domain.ErrConflict
		}
	}
	p, ok := f.rows[purchaseID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.PaymentIntentID != nil {
		return domain.ErrDuplicateOperation
	}
	p.PaymentIntentID = &intentID
	return nil
}

func (f *fakePurchaseRepo) ApplyDonation(_ context.Context, purchaseID string, donationCents int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[purchaseID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.DonationCents != 0 || p.Status != domain.PurchaseStatusPending {
		return domain.ErrDuplicateOperation
	}
	p.DonationCents = donationCents
	return nil
}

func (f *fakePurchaseRepo) MarkCompleted(_ context.Context, purchaseID, downloadToken string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[purchaseID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if p.Status != domain.PurchaseStatusPending {
		return false, nil
	}
	p.Status = domain.PurchaseStatusCompleted
	p.DownloadToken = &downloadToken
	f.completions++
	return true, nil
}

func (f *fakePurchaseRepo) MarkFailed(_ context.Context, purchaseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[purchaseID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = domain.PurchaseStatusFailed
	return nil
}

func (f *fakePurchaseRepo) ListRecent(context.Context, int) ([]domain.Purchase, error) {
	return nil, nil
}

type fakeProcessor struct {
	mu        sync.Mutex
	intents   map[string]*Intent
	created   int
	updated   int
	createErr error
	updateErr error
}

func (f *fakeProcessor) CreateIntent(_ context.Context, amountCents int64, _ string, _ map[string]string) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	intent := &Intent{
		ID:           fmt.Sprintf("pi_test_%d", f.created),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", f.created),
		AmountCents:  amountCents,
		Status:       "requires_payment_method",
	}
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *fakeProcessor) UpdateIntentAmount(_ context.Context, intentID string, amountCents int64) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	intent, ok := f.intents[intentID]
	if !ok {
		return nil, fmt.Errorf("intent %s: %w", intentID, domain.ErrPaymentProcessor)
	}
	f.updated++
	intent.AmountCents = amountCents
	return intent, nil
}

func (f *fakeProcessor) RetrieveIntent(_ context.Context, intentID string) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	intent, ok := f.intents[intentID]
	if !ok {
		return nil, fmt.Errorf("intent %s: %w", intentID, domain.ErrPaymentProcessor)
	}
	cp := *intent
	return &cp, nil
}

func (f *fakeProcessor) succeed(intentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents[intentID].Status = IntentStatusSucceeded
}

type fakeEmailer struct {
	mu         sync.Mutex
	subscribed int
	tagged     int
	tagErr     error
}

func (f *fakeEmailer) Subscribe(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribed++
	return nil
}

func (f *fakeEmailer) TagPurchase(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagged++
	return f.tagErr
}

type fakeAnalytics struct {
	mu     sync.Mutex
	events []domain.AnalyticsEvent
}

func (f *fakeAnalytics) Track(_ context.Context, event *domain.AnalyticsEvent) (*domain.AnalyticsEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *event)
	return event, nil
}

func (f *fakeAnalytics) CountByType(_ context.Context, eventType string) (int64, error) {
	return int64(f.countOf(eventType)), nil
}

func (f *fakeAnalytics) CompletedPurchaseStats(context.Context) (int64, int64, error) {
	return 0, 0, nil
}

func (f *fakeAnalytics) countOf(eventType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.EventType == eventType {
			n++
		}
	}
	return n
}

type fakePackageItems struct{}

func (fakePackageItems) Create(_ context.Context, item *domain.PackageItem) (*domain.PackageItem, error) {
	return item, nil
}

func (fakePackageItems) GetByID(context.Context, string) (*domain.PackageItem, error) {
	return nil, domain.ErrNotFound
}

func (fakePackageItems) ListAll(context.Context) ([]domain.PackageItem, error) {
	return nil, nil
}

func (fakePackageItems) ListVisible(context.Context) ([]domain.PackageItem, error) {
	return []domain.PackageItem{
		{ID: "item-1", Name: "Guide", ContentURL: "https://cdn.example.com/guide.pdf", DisplayOrder: 0, IsVisible: true},
		{ID: "item-2", Name: "Worksheets", ContentURL: "https://cdn.example.com/worksheets.zip", DisplayOrder: 1, IsVisible: true},
	}, nil
}

func (fakePackageItems) Update(_ context.Context, item *domain.PackageItem) (*domain.PackageItem, error) {
	return item, nil
}

func (fakePackageItems) Delete(context.Context, string) error { return nil }
