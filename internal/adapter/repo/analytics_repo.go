package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"funnel/internal/domain"
)

// AnalyticsRepositoryPG implements domain.AnalyticsRepository using
// PostgreSQL. The event log is append-only; nothing here updates or deletes.
type AnalyticsRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepositoryPG {
	return &AnalyticsRepositoryPG{pool: pool}
}

// Track appends one event to the log.
func (r *AnalyticsRepositoryPG) Track(ctx context.Context, event *domain.AnalyticsEvent) (*domain.AnalyticsEvent, error) {
	data := event.EventData
	if len(data) == 0 {
		data = []byte(`{}`)
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO analytics_events (id, event_type, event_data, session_id, country)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
RETURNING id, event_type, event_data, COALESCE(session_id, ''), COALESCE(country, ''), created_at;
`, event.ID, event.EventType, data, event.SessionID, event.Country)

	var stored domain.AnalyticsEvent
	if err := row.Scan(&stored.ID, &stored.EventType, &stored.EventData, &stored.SessionID, &stored.Country, &stored.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &stored, nil
}

// CountByType returns how many events of the given type were recorded.
func (r *AnalyticsRepositoryPG) CountByType(ctx context.Context, eventType string) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM analytics_events
WHERE event_type = $1;
`, eventType).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// CompletedPurchaseStats returns the count of completed purchases and their
// total revenue in minor units, donations included.
func (r *AnalyticsRepositoryPG) CompletedPurchaseStats(ctx context.Context) (int64, int64, error) {
	var count, revenue int64
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*), COALESCE(SUM(amount_cents + donation_cents), 0)
FROM purchases
WHERE status = $1;
`, domain.PurchaseStatusCompleted).Scan(&count, &revenue); err != nil {
		return 0, 0, err
	}
	return count, revenue, nil
}
