package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"funnel/internal/domain"
)

const purchaseColumns = `id, email, name, stripe_payment_intent_id, amount_cents, donation_cents, currency, status, download_token, created_at`

// PurchaseRepositoryPG implements domain.PurchaseRepository backed by
// PostgreSQL. All at-most-once guards are single conditional statements; the
// database is the only arbiter of who won a concurrent race.
type PurchaseRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepositoryPG.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepositoryPG {
	return &PurchaseRepositoryPG{pool: pool}
}

// Create inserts a new pending purchase and returns the stored row.
func (r *PurchaseRepositoryPG) Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO purchases (id, email, name, amount_cents, donation_cents, currency, status)
VALUES ($1, $2, $3, $4, 0, $5, $6)
RETURNING `+purchaseColumns+`;
`, purchase.ID, purchase.Email, purchase.Name, purchase.AmountCents, purchase.Currency, purchase.Status)
	return scanPurchase(row)
}

// GetByID fetches a purchase by UUID.
func (r *PurchaseRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
	return scanPurchase(row)
}

// GetByPaymentIntentID fetches a purchase by its processor reference.
func (r *PurchaseRepositoryPG) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Purchase, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE stripe_payment_intent_id = $1`, intentID)
	return scanPurchase(row)
}

// GetByDownloadToken fetches a purchase by its download token.
func (r *PurchaseRepositoryPG) GetByDownloadToken(ctx context.Context, token string) (*domain.Purchase, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE download_token = $1`, token)
	return scanPurchase(row)
}

// AttachPaymentIntent sets the processor reference at most once. A unique
// index on stripe_payment_intent_id rejects reuse across purchases.
func (r *PurchaseRepositoryPG) AttachPaymentIntent(ctx context.Context, purchaseID, intentID string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE purchases
SET stripe_payment_intent_id = $2
WHERE id = $1
  AND stripe_payment_intent_id IS NULL;
`, purchaseID, intentID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		existing, lookupErr := r.GetByID(ctx, purchaseID)
		if lookupErr != nil {
			return lookupErr
		}
		if existing.PaymentIntentID != nil {
			return domain.ErrDuplicateOperation
		}
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDonation persists a positive donation exactly once while the purchase
// is still pending.
func (r *PurchaseRepositoryPG) ApplyDonation(ctx context.Context, purchaseID string, donationCents int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE purchases
SET donation_cents = $2
WHERE id = $1
  AND donation_cents = 0
  AND status = $3;
`, purchaseID, donationCents, domain.PurchaseStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateOperation
	}
	return nil
}

// MarkCompleted transitions pending to completed and stores the download
// token. The reported bool is false when a concurrent caller got there first.
func (r *PurchaseRepositoryPG) MarkCompleted(ctx context.Context, purchaseID, downloadToken string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE purchases
SET status = $3, download_token = $2
WHERE id = $1
  AND status = $4;
`, purchaseID, downloadToken, domain.PurchaseStatusCompleted, domain.PurchaseStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkFailed transitions pending to failed. Completed purchases never move
// backward, so the condition simply matches nothing for them.
func (r *PurchaseRepositoryPG) MarkFailed(ctx context.Context, purchaseID string) error {
	_, err := r.pool.Exec(ctx, `
UPDATE purchases
SET status = $2
WHERE id = $1
  AND status = $3;
`, purchaseID, domain.PurchaseStatusFailed, domain.PurchaseStatusPending)
	return err
}

// ListRecent returns the most recent purchases limited by the input value.
func (r *PurchaseRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Purchase, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+purchaseColumns+`
FROM purchases
ORDER BY created_at DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.PaymentIntentID, &p.AmountCents, &p.DonationCents, &p.Currency, &p.Status, &p.DownloadToken, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var p domain.Purchase
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &p.PaymentIntentID, &p.AmountCents, &p.DonationCents, &p.Currency, &p.Status, &p.DownloadToken, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
