package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"funnel/internal/domain"
)

// TestimonialRepositoryPG implements domain.TestimonialRepository using PostgreSQL.
type TestimonialRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTestimonialRepository creates a new testimonial repo.
func NewTestimonialRepository(pool *pgxpool.Pool) *TestimonialRepositoryPG {
	return &TestimonialRepositoryPG{pool: pool}
}

// Create inserts a new testimonial record.
func (r *TestimonialRepositoryPG) Create(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO testimonials (id, name, content, is_visible)
VALUES ($1, $2, $3, $4)
RETURNING id, name, content, is_visible, created_at;
`, testimonial.ID, testimonial.Name, testimonial.Content, testimonial.IsVisible)
	return scanTestimonial(row)
}

// GetByID fetches a testimonial by UUID.
func (r *TestimonialRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, content, is_visible, created_at
FROM testimonials
WHERE id = $1;
`, id)
	return scanTestimonial(row)
}

// ListAll returns every testimonial, newest first.
func (r *TestimonialRepositoryPG) ListAll(ctx context.Context) ([]domain.Testimonial, error) {
	return r.list(ctx, `
SELECT id, name, content, is_visible, created_at
FROM testimonials
ORDER BY created_at DESC;
`)
}

// ListVisible returns only testimonials shown on the sales page.
func (r *TestimonialRepositoryPG) ListVisible(ctx context.Context) ([]domain.Testimonial, error) {
	return r.list(ctx, `
SELECT id, name, content, is_visible, created_at
FROM testimonials
WHERE is_visible = TRUE
ORDER BY created_at DESC;
`)
}

// Update rewrites a testimonial's content fields.
func (r *TestimonialRepositoryPG) Update(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE testimonials
SET name = $2, content = $3, is_visible = $4
WHERE id = $1
RETURNING id, name, content, is_visible, created_at;
`, testimonial.ID, testimonial.Name, testimonial.Content, testimonial.IsVisible)
	return scanTestimonial(row)
}

// SetVisibility toggles whether the testimonial is shown publicly.
func (r *TestimonialRepositoryPG) SetVisibility(ctx context.Context, id string, visible bool) (*domain.Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE testimonials
SET is_visible = $2
WHERE id = $1
RETURNING id, name, content, is_visible, created_at;
`, id, visible)
	return scanTestimonial(row)
}

// Delete removes a testimonial.
func (r *TestimonialRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TestimonialRepositoryPG) list(ctx context.Context, query string) ([]domain.Testimonial, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Testimonial
	for rows.Next() {
		var t domain.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Content, &t.IsVisible, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanTestimonial(row pgx.Row) (*domain.Testimonial, error) {
	var t domain.Testimonial
	if err := row.Scan(&t.ID, &t.Name, &t.Content, &t.IsVisible, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
