package events

import (
	"time"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketNoteAdded     EventType = "ticket_note_added"
	EventTicketAssigned      EventType = "ticket_assigned"
)

// Event represents a domain event emitted by services. ActorID is empty
// for customer-originated events (public submissions).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Folio     string      `json:"folio"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Type         domain.TicketType `json:"type"`
	CustomerName string            `json:"customer_name"`
	PostalCode   *string           `json:"postal_code,omitempty"`
	PackageID    *string           `json:"package_id,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Type      domain.TicketType   `json:"type"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Reason    string              `json:"reason,omitempty"`
}

// TicketNoteAddedPayload payload.
type TicketNoteAddedPayload struct {
	EventID  string `json:"event_id"`
	IsPublic bool   `json:"is_public"`
	Preview  string `json:"preview"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedTo *string `json:"assigned_to,omitempty"`
}
