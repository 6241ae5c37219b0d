package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/launch-watch/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadAppended EventType = "lead_appended"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Sheet     string      `json:"sheet"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadAppendedPayload payload.
type LeadAppendedPayload struct {
	Timestamp     string `json:"timestamp"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	TermsAccepted string `json:"termsAccepted"`
}

// NewLeadAppended builds the event for a row written to sheet.
func NewLeadAppended(sheet string, lead domain.Lead, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventLeadAppended,
		Sheet:     sheet,
		Timestamp: at,
		Payload: LeadAppendedPayload{
			Timestamp:     lead.Timestamp,
			FullName:      lead.FullName,
			Email:         lead.Email,
			Phone:         lead.Phone,
			Role:          lead.Role,
			TermsAccepted: lead.TermsAccepted,
		},
	}
}
