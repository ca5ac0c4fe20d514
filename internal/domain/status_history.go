package domain

import "time"

// StatusHistoryEntry is an immutable audit record of one status transition.
// PreviousStatus is nil only for the entry written at ticket creation.
// Ordering by CreatedAt is the source of truth for when a status began.
type StatusHistoryEntry struct {
	ID             string
	TicketID       string
	PreviousStatus *TicketStatus
	NewStatus      TicketStatus
	ChangeReason   *string
	ChangedBy      *string
	CreatedAt      time.Time
}
