package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"funnel/internal/domain"
)

type trackEventRequest struct {
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData"`
	SessionID string          `json:"sessionId"`
}

// AnalyticsTrack appends one event to the append-only log. Unknown event
// types are rejected at the boundary; page views get a best-effort country
// attribution from the caller's IP.
func (a *App) AnalyticsTrack(w http.ResponseWriter, r *http.Request) {
	var req trackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}
	eventType := strings.TrimSpace(req.EventType)
	if _, ok := domain.KnownEventTypes[eventType]; !ok {
		a.error(w, http.StatusBadRequest, "validation_error", "unknown event type")
		return
	}

	event := &domain.AnalyticsEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		EventData: req.EventData,
		SessionID: strings.TrimSpace(req.SessionID),
		Country:   a.resolveCountry(r),
	}
	stored, err := a.Analytics.Track(r.Context(), event)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":        stored.ID,
		"eventType": stored.EventType,
		"sessionId": stored.SessionID,
		"createdAt": stored.CreatedAt,
	})
}

func (a *App) resolveCountry(r *http.Request) string {
	if a.Geo == nil {
		return ""
	}
	ip := clientIP(r)
	if ip == "" {
		return ""
	}
	country, err := a.Geo.CountryCode(ip)
	if err != nil {
		return ""
	}
	return country
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware already folded X-Forwarded-For into RemoteAddr.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
