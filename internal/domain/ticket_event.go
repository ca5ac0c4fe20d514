package domain

import "time"

// TicketEventType differentiates system annotations from human notes.
type TicketEventType string

const (
	EventTypeStatusChange TicketEventType = "status_change"
	EventTypeNoteInternal TicketEventType = "note_internal"
	EventTypeNotePublic   TicketEventType = "note_public"
	EventTypeAssignment   TicketEventType = "assignment"
)

// TicketEvent is an append-only log entry on a ticket: either a
// system-generated annotation or a staff note. IsVisibleToCustomer gates
// exposure through the anonymous tracking endpoint.
type TicketEvent struct {
	ID                  string
	TicketID            string
	EventType           TicketEventType
	Title               string
	Content             string
	IsVisibleToCustomer bool
	CreatedBy           *string
	CreatedAt           time.Time
}
