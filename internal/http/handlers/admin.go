package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"funnel/internal/domain"
)

// AdminAnalytics aggregates the event log and purchases for the dashboard.
func (a *App) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitors, err := a.Analytics.CountByType(ctx, domain.EventPageView)
	if err != nil {
		a.domainError(w, err)
		return
	}
	clicks, err := a.Analytics.CountByType(ctx, domain.EventLinkClick)
	if err != nil {
		a.domainError(w, err)
		return
	}
	purchaseCount, revenueCents, err := a.Analytics.CompletedPurchaseStats(ctx)
	if err != nil {
		a.domainError(w, err)
		return
	}
	leads, err := a.Leads.Count(ctx)
	if err != nil {
		a.domainError(w, err)
		return
	}
	recent, err := a.Purchases.ListRecent(ctx, 10)
	if err != nil {
		a.domainError(w, err)
		return
	}

	revenue := domain.CentsToDollars(revenueCents)
	summary := domain.AnalyticsSummary{
		TotalVisitors:    visitors,
		TotalClicks:      clicks,
		TotalPurchases:   purchaseCount,
		TotalRevenue:     revenue,
		FormattedRevenue: formatRevenue(a.Currency, revenue),
		TotalEmailLeads:  leads,
		RecentPurchases:  recent,
	}
	if visitors > 0 {
		summary.ConversionRate = float64(purchaseCount) / float64(visitors) * 100
	}
	if purchaseCount > 0 {
		summary.AvgOrderValue = revenue / float64(purchaseCount)
	}

	a.json(w, http.StatusOK, map[string]any{
		"totalVisitors":    summary.TotalVisitors,
		"totalClicks":      summary.TotalClicks,
		"totalPurchases":   summary.TotalPurchases,
		"totalRevenue":     summary.TotalRevenue,
		"formattedRevenue": summary.FormattedRevenue,
		"totalEmailLeads":  summary.TotalEmailLeads,
		"conversionRate":   summary.ConversionRate,
		"avgOrderValue":    summary.AvgOrderValue,
		"recentPurchases":  viewPurchases(summary.RecentPurchases),
	})
}

func formatRevenue(currencyCode string, revenue float64) string {
	unit, err := currency.ParseISO(strings.ToUpper(currencyCode))
	if err != nil {
		unit = currency.USD
	}
	printer := message.NewPrinter(language.English)
	return printer.Sprint(currency.Symbol(unit.Amount(revenue)))
}

// AdminPurchases lists recent purchases for reconciliation.
func (a *App) AdminPurchases(w http.ResponseWriter, r *http.Request) {
	recent, err := a.Purchases.ListRecent(r.Context(), 20)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": viewPurchases(recent)})
}

// AdminTestimonialsList returns every testimonial, hidden ones included.
func (a *App) AdminTestimonialsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Testimonials.ListAll(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, viewTestimonials(items))
}

type testimonialRequest struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	IsVisible *bool  `json:"isVisible"`
}

// AdminTestimonialCreate adds a testimonial; visibility defaults to true.
func (a *App) AdminTestimonialCreate(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Content) == "" {
		a.error(w, http.StatusBadRequest, "validation_error", "name and content are required")
		return
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	created, err := a.Testimonials.Create(r.Context(), &domain.Testimonial{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Content:   strings.TrimSpace(req.Content),
		IsVisible: visible,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, viewTestimonial(created))
}

type testimonialPatchRequest struct {
	Name      *string `json:"name"`
	Content   *string `json:"content"`
	IsVisible *bool   `json:"isVisible"`
}

// AdminTestimonialUpdate patches a testimonial; a visibility-only patch is
// the common toggle case.
func (a *App) AdminTestimonialUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req testimonialPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}

	if req.Name == nil && req.Content == nil && req.IsVisible != nil {
		updated, err := a.Testimonials.SetVisibility(r.Context(), id, *req.IsVisible)
		if err != nil {
			a.domainError(w, err)
			return
		}
		a.json(w, http.StatusOK, viewTestimonial(updated))
		return
	}

	existing, err := a.Testimonials.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Content != nil {
		existing.Content = strings.TrimSpace(*req.Content)
	}
	if req.IsVisible != nil {
		existing.IsVisible = *req.IsVisible
	}
	updated, err := a.Testimonials.Update(r.Context(), existing)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, viewTestimonial(updated))
}

// AdminTestimonialDelete removes a testimonial.
func (a *App) AdminTestimonialDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Testimonials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"success": true})
}

// AdminPackageItemsList returns every package item, hidden ones included.
func (a *App) AdminPackageItemsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.PackageItems.ListAll(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, viewPackageItems(items))
}

type packageItemRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContentURL   string `json:"contentUrl"`
	DisplayOrder int    `json:"displayOrder"`
	IsVisible    *bool  `json:"isVisible"`
}

// AdminPackageItemCreate adds a downloadable item to the package.
func (a *App) AdminPackageItemCreate(w http.ResponseWriter, r *http.Request) {
	var req packageItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	created, err := a.PackageItems.Create(r.Context(), &domain.PackageItem{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		ContentURL:   strings.TrimSpace(req.ContentURL),
		DisplayOrder: req.DisplayOrder,
		IsVisible:    visible,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, viewPackageItem(created))
}

type packageItemPatchRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ContentURL   *string `json:"contentUrl"`
	DisplayOrder *int    `json:"displayOrder"`
	IsVisible    *bool   `json:"isVisible"`
}

// AdminPackageItemUpdate patches a package item.
func (a *App) AdminPackageItemUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req packageItemPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}

	existing, err := a.PackageItems.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = strings.TrimSpace(*req.Description)
	}
	if req.ContentURL != nil {
		existing.ContentURL = strings.TrimSpace(*req.ContentURL)
	}
	if req.DisplayOrder != nil {
		existing.DisplayOrder = *req.DisplayOrder
	}
	if req.IsVisible != nil {
		existing.IsVisible = *req.IsVisible
	}
	updated, err := a.PackageItems.Update(r.Context(), existing)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, viewPackageItem(updated))
}

// AdminPackageItemDelete removes a package item.
func (a *App) AdminPackageItemDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.PackageItems.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"success": true})
}
