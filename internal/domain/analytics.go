package domain

import (
	"encoding/json"
	"time"
)

// Analytics event types tracked by the funnel.
const (
	EventPageView     = "page_view"
	EventLinkClick    = "link_click"
	EventPurchase     = "purchase"
	EventEmailCapture = "email_capture"
)

// KnownEventTypes lists the event types accepted at the tracking boundary.
var KnownEventTypes = map[string]struct{}{
	EventPageView:     {},
	EventLinkClick:    {},
	EventPurchase:     {},
	EventEmailCapture: {},
}

// AnalyticsEvent is one append-only entry in the event log. Events are never
// updated or deleted; they feed aggregate reporting only.
type AnalyticsEvent struct {
	ID        string
	EventType string
	EventData json.RawMessage
	SessionID string
	Country   string
	CreatedAt time.Time
}

// AnalyticsSummary aggregates the event log and completed purchases for the
// admin dashboard.
type AnalyticsSummary struct {
	TotalVisitors    int64
	TotalClicks      int64
	TotalPurchases   int64
	TotalRevenue     float64
	FormattedRevenue string
	TotalEmailLeads  int64
	ConversionRate   float64
	AvgOrderValue    float64
	RecentPurchases  []Purchase
}
