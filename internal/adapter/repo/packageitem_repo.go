package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"funnel/internal/domain"
)

const packageItemColumns = `id, name, description, content_url, display_order, is_visible, created_at, updated_at`

// PackageItemRepositoryPG implements domain.PackageItemRepository using PostgreSQL.
type PackageItemRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPackageItemRepository creates a new package item repo.
func NewPackageItemRepository(pool *pgxpool.Pool) *PackageItemRepositoryPG {
	return &PackageItemRepositoryPG{pool: pool}
}

// Create inserts a new package item.
func (r *PackageItemRepositoryPG) Create(ctx context.Context, item *domain.PackageItem) (*domain.PackageItem, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO package_items (id, name, description, content_url, display_order, is_visible)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+packageItemColumns+`;
`, item.ID, item.Name, item.Description, item.ContentURL, item.DisplayOrder, item.IsVisible)
	return scanPackageItem(row)
}

// GetByID fetches a package item by UUID.
func (r *PackageItemRepositoryPG) GetByID(ctx context.Context, id string) (*domain.PackageItem, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+packageItemColumns+` FROM package_items WHERE id = $1`, id)
	return scanPackageItem(row)
}

// ListAll returns every package item in display order.
func (r *PackageItemRepositoryPG) ListAll(ctx context.Context) ([]domain.PackageItem, error) {
	return r.list(ctx, `
SELECT `+packageItemColumns+`
FROM package_items
ORDER BY display_order ASC, created_at DESC;
`)
}

// ListVisible returns the items delivered on the download page, ordered by
// display order then recency.
func (r *PackageItemRepositoryPG) ListVisible(ctx context.Context) ([]domain.PackageItem, error) {
	return r.list(ctx, `
SELECT `+packageItemColumns+`
FROM package_items
WHERE is_visible = TRUE
ORDER BY display_order ASC, created_at DESC;
`)
}

// Update rewrites a package item's fields.
func (r *PackageItemRepositoryPG) Update(ctx context.Context, item *domain.PackageItem) (*domain.PackageItem, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE package_items
SET name = $2, description = $3, content_url = $4, display_order = $5, is_visible = $6, updated_at = NOW()
WHERE id = $1
RETURNING `+packageItemColumns+`;
`, item.ID, item.Name, item.Description, item.ContentURL, item.DisplayOrder, item.IsVisible)
	return scanPackageItem(row)
}

// Delete removes a package item.
func (r *PackageItemRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM package_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PackageItemRepositoryPG) list(ctx context.Context, query string) ([]domain.PackageItem, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PackageItem
	for rows.Next() {
		var item domain.PackageItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.ContentURL, &item.DisplayOrder, &item.IsVisible, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPackageItem(row pgx.Row) (*domain.PackageItem, error) {
	var item domain.PackageItem
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.ContentURL, &item.DisplayOrder, &item.IsVisible, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
