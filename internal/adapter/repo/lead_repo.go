package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"funnel/internal/domain"
)

// EmailLeadRepositoryPG implements domain.EmailLeadRepository using PostgreSQL.
type EmailLeadRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewEmailLeadRepository creates a new lead repo.
func NewEmailLeadRepository(pool *pgxpool.Pool) *EmailLeadRepositoryPG {
	return &EmailLeadRepositoryPG{pool: pool}
}

// Upsert inserts a lead or, when the email already opted in, refreshes its
// name and source instead of creating a duplicate.
func (r *EmailLeadRepositoryPG) Upsert(ctx context.Context, lead *domain.EmailLead) (*domain.EmailLead, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO email_leads (id, email, name, source)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE
SET name = EXCLUDED.name,
    source = EXCLUDED.source
RETURNING id, email, name, source, convertkit_subscriber_id, created_at;
`, lead.ID, lead.Email, lead.Name, lead.Source)
	return scanLead(row)
}

// GetByEmail fetches a lead by its unique email.
func (r *EmailLeadRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.EmailLead, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, name, source, convertkit_subscriber_id, created_at
FROM email_leads
WHERE email = $1;
`, email)
	return scanLead(row)
}

// Count returns the number of captured leads.
func (r *EmailLeadRepositoryPG) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM email_leads`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanLead(row pgx.Row) (*domain.EmailLead, error) {
	var lead domain.EmailLead
	if err := row.Scan(&lead.ID, &lead.Email, &lead.Name, &lead.Source, &lead.SubscriberID, &lead.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}
