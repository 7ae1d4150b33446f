package domain

import "time"

// PurchaseStatus enumerates the lifecycle of a checkout attempt.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
)

// Purchase is the local record of a checkout attempt, correlated 1:1 with at
// most one payment intent at the processor. Amounts are stored in integer
// minor units; the JSON API converts to and from dollars at the boundary.
type Purchase struct {
	ID              string
	Email           string
	Name            string
	PaymentIntentID *string
	AmountCents     int64
	DonationCents   int64
	Currency        string
	Status          PurchaseStatus
	DownloadToken   *string
	CreatedAt       time.Time
}

// TotalCents is the charged amount including an applied donation.
func (p Purchase) TotalCents() int64 {
	return p.AmountCents + p.DonationCents
}

// IsCompleted reports whether payment has been confirmed and fulfilled.
func (p Purchase) IsCompleted() bool {
	return p.Status == PurchaseStatusCompleted
}

// DollarsToCents converts a dollar amount to minor units the same way the
// processor expects them.
func DollarsToCents(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

// CentsToDollars converts minor units back to a dollar amount for responses.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
