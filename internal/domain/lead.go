package domain

import "time"

// EmailLead is a marketing opt-in, keyed uniquely by email. Re-submitting the
// same email updates name and source instead of creating a duplicate.
type EmailLead struct {
	ID           string
	Email        string
	Name         string
	Source       string
	SubscriberID *string
	CreatedAt    time.Time
}

// LeadSourceLanding is the default opt-in source.
const LeadSourceLanding = "landing_page"
