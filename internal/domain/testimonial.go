package domain

import "time"

// Testimonial is an admin-curated quote shown on the sales page.
type Testimonial struct {
	ID        string
	Name      string
	Content   string
	IsVisible bool
	CreatedAt time.Time
}
