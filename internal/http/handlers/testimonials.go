package handlers

import "net/http"

// TestimonialsVisible lists the testimonials shown on the sales page.
func (a *App) TestimonialsVisible(w http.ResponseWriter, r *http.Request) {
	items, err := a.Testimonials.ListVisible(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, viewTestimonials(items))
}

// PackageItemsVisible lists the visible package contents for the landing
// page's what-you-get section.
func (a *App) PackageItemsVisible(w http.ResponseWriter, r *http.Request) {
	items, err := a.PackageItems.ListVisible(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, viewPackageItems(items))
}
