package domain

import "time"

// PackageItem is one downloadable piece of the purchased product. ContentURL
// is stored verbatim; resolving it to bytes is the object store's concern.
type PackageItem struct {
	ID           string
	Name         string
	Description  string
	ContentURL   string
	DisplayOrder int
	IsVisible    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
