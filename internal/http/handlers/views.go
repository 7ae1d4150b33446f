package handlers

import (
	"time"

	"funnel/internal/domain"
)

type purchaseView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Amount    float64   `json:"amount"`
	Donation  float64   `json:"donation,omitempty"`
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Token     string    `json:"downloadToken,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func viewPurchase(p *domain.Purchase) purchaseView {
	v := purchaseView{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Amount:    domain.CentsToDollars(p.AmountCents),
		Donation:  domain.CentsToDollars(p.DonationCents),
		Total:     domain.CentsToDollars(p.TotalCents()),
		Currency:  p.Currency,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
	if p.DownloadToken != nil {
		v.Token = *p.DownloadToken
	}
	return v
}

type testimonialView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	IsVisible bool      `json:"isVisible"`
	CreatedAt time.Time `json:"createdAt"`
}

func viewTestimonial(t *domain.Testimonial) testimonialView {
	return testimonialView{
		ID:        t.ID,
		Name:      t.Name,
		Content:   t.Content,
		IsVisible: t.IsVisible,
		CreatedAt: t.CreatedAt,
	}
}

func viewTestimonials(items []domain.Testimonial) []testimonialView {
	views := make([]testimonialView, 0, len(items))
	for i := range items {
		views = append(views, viewTestimonial(&items[i]))
	}
	return views
}

type packageItemView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ContentURL   string    `json:"contentUrl,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	IsVisible    bool      `json:"isVisible"`
	CreatedAt    time.Time `json:"createdAt"`
}

func viewPackageItem(item *domain.PackageItem) packageItemView {
	return packageItemView{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		ContentURL:   item.ContentURL,
		DisplayOrder: item.DisplayOrder,
		IsVisible:    item.IsVisible,
		CreatedAt:    item.CreatedAt,
	}
}

func viewPackageItems(items []domain.PackageItem) []packageItemView {
	views := make([]packageItemView, 0, len(items))
	for i := range items {
		views = append(views, viewPackageItem(&items[i]))
	}
	return views
}

func viewPurchases(items []domain.Purchase) []purchaseView {
	views := make([]purchaseView, 0, len(items))
	for i := range items {
		views = append(views, viewPurchase(&items[i]))
	}
	return views
}
