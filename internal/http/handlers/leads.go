package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"funnel/internal/domain"
)

type emailLeadRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// EmailLeadCreate records a marketing opt-in and forwards it to the email
// service. Re-submitting an email refreshes the lead instead of duplicating
// it, and a failed forward never fails the opt-in.
func (a *App) EmailLeadCreate(w http.ResponseWriter, r *http.Request) {
	var req emailLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		a.error(w, http.StatusBadRequest, "validation_error", "a valid email is required")
		return
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = domain.LeadSourceLanding
	}

	lead, err := a.Leads.Upsert(r.Context(), &domain.EmailLead{
		ID:     uuid.NewString(),
		Email:  email,
		Name:   strings.TrimSpace(req.Name),
		Source: source,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}

	if err := a.Emailer.Subscribe(r.Context(), lead.Email, lead.Name); err != nil {
		a.Logger.Warn().Str("email", lead.Email).Err(err).Msg("lead subscribe failed")
	}

	a.json(w, http.StatusOK, map[string]any{
		"id":        lead.ID,
		"email":     lead.Email,
		"name":      lead.Name,
		"source":    lead.Source,
		"createdAt": lead.CreatedAt,
	})
}
