package domain

import "context"

// PurchaseRepository persists checkout attempts. The conditional mutations
// (ApplyDonation, MarkCompleted, AttachPaymentIntent) must be single atomic
// statements keyed on current state; callers rely on "no row matched" to
// detect a lost race instead of read-modify-write.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) (*Purchase, error)
	GetByID(ctx context.Context, id string) (*Purchase, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*Purchase, error)
	GetByDownloadToken(ctx context.Context, token string) (*Purchase, error)
	// AttachPaymentIntent sets the processor reference at most once. It
	// returns ErrConflict when the intent id is already attached elsewhere
	// and ErrDuplicateOperation when this purchase already has one.
	AttachPaymentIntent(ctx context.Context, purchaseID, intentID string) error
	// ApplyDonation sets a positive donation exactly once while the purchase
	// is still pending; ErrDuplicateOperation when the guard fails.
	ApplyDonation(ctx context.Context, purchaseID string, donationCents int64) error
	// MarkCompleted transitions pending to completed and stores the download
	// token. It reports whether this call performed the transition; false
	// means another caller already completed the purchase.
	MarkCompleted(ctx context.Context, purchaseID, downloadToken string) (bool, error)
	MarkFailed(ctx context.Context, purchaseID string) error
	ListRecent(ctx context.Context, limit int) ([]Purchase, error)
}

// EmailLeadRepository persists marketing opt-ins with upsert-on-email semantics.
type EmailLeadRepository interface {
	Upsert(ctx context.Context, lead *EmailLead) (*EmailLead, error)
	GetByEmail(ctx context.Context, email string) (*EmailLead, error)
	Count(ctx context.Context) (int64, error)
}

// TestimonialRepository persists admin-curated testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *Testimonial) (*Testimonial, error)
	GetByID(ctx context.Context, id string) (*Testimonial, error)
	ListAll(ctx context.Context) ([]Testimonial, error)
	ListVisible(ctx context.Context) ([]Testimonial, error)
	Update(ctx context.Context, testimonial *Testimonial) (*Testimonial, error)
	SetVisibility(ctx context.Context, id string, visible bool) (*Testimonial, error)
	Delete(ctx context.Context, id string) error
}

// PackageItemRepository persists the downloadable package contents.
type PackageItemRepository interface {
	Create(ctx context.Context, item *PackageItem) (*PackageItem, error)
	GetByID(ctx context.Context, id string) (*PackageItem, error)
	ListAll(ctx context.Context) ([]PackageItem, error)
	ListVisible(ctx context.Context) ([]PackageItem, error)
	Update(ctx context.Context, item *PackageItem) (*PackageItem, error)
	Delete(ctx context.Context, id string) error
}

// AnalyticsRepository appends to the event log and aggregates it.
type AnalyticsRepository interface {
	Track(ctx context.Context, event *AnalyticsEvent) (*AnalyticsEvent, error)
	CountByType(ctx context.Context, eventType string) (int64, error)
	CompletedPurchaseStats(ctx context.Context) (count int64, revenueCents int64, err error)
}
