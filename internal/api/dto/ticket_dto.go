package dto

import (
	"time"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// CreateContractRequest payload for the public contracting funnel.
type CreateContractRequest struct {
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	PostalCode   *string `json:"postal_code"`
	PackageID    *string `json:"package_id"`
	Comments     string  `json:"comments"`
}

// CreateFaultRequest payload for the public fault-report form.
type CreateFaultRequest struct {
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	PostalCode   *string `json:"postal_code"`
	Description  string  `json:"description"`
}

// TicketCreatedResponse confirms a submission with its tracking folio.
type TicketCreatedResponse struct {
	Folio     string            `json:"folio"`
	Type      domain.TicketType `json:"type"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// TransitionRequest payload for staff status changes.
type TransitionRequest struct {
	Status    domain.TicketStatus `json:"status"`
	Reason    *string             `json:"reason"`
	Date      *time.Time          `json:"scheduled_date"`
	TimeStart *string             `json:"scheduled_time_start"`
	TimeEnd   *string             `json:"scheduled_time_end"`
}

// AddNoteRequest payload for staff notes.
type AddNoteRequest struct {
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
}

// AssignRequest payload; a null staff_id clears the assignment.
type AssignRequest struct {
	StaffID *string `json:"staff_id"`
}

// TicketSummary response for staff listings.
type TicketSummary struct {
	ID           string              `json:"id"`
	Folio        string              `json:"folio"`
	Type         domain.TicketType   `json:"type"`
	Status       domain.TicketStatus `json:"status"`
	StatusLabel  string              `json:"status_label"`
	CustomerName string              `json:"customer_name"`
	Phone        string              `json:"phone"`
	AssignedTo   *string             `json:"assigned_to"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// StatusHistoryResponse is one audit entry.
type StatusHistoryResponse struct {
	ID             string               `json:"id"`
	PreviousStatus *domain.TicketStatus `json:"previous_status"`
	NewStatus      domain.TicketStatus  `json:"new_status"`
	ChangeReason   *string              `json:"change_reason,omitempty"`
	ChangedBy      *string              `json:"changed_by,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// TicketEventResponse is one event log entry.
type TicketEventResponse struct {
	ID                  string                 `json:"id"`
	EventType           domain.TicketEventType `json:"event_type"`
	Title               string                 `json:"title"`
	Content             string                 `json:"content"`
	IsVisibleToCustomer bool                   `json:"is_visible_to_customer"`
	CreatedBy           *string                `json:"created_by,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
}

// TicketDetailResponse provides full ticket info for staff.
type TicketDetailResponse struct {
	ID                 string                  `json:"id"`
	Folio              string                  `json:"folio"`
	Type               domain.TicketType       `json:"type"`
	Status             domain.TicketStatus     `json:"status"`
	StatusLabel        string                  `json:"status_label"`
	CustomerName       string                  `json:"customer_name"`
	Phone              string                  `json:"phone"`
	Email              *string                 `json:"email"`
	Address            *string                 `json:"address"`
	PostalCode         *string                 `json:"postal_code"`
	PackageID          *string                 `json:"package_id"`
	ScheduledDate      *time.Time              `json:"scheduled_date"`
	ScheduledTimeStart *string                 `json:"scheduled_time_start"`
	ScheduledTimeEnd   *string                 `json:"scheduled_time_end"`
	PublicNote         *string                 `json:"public_note"`
	AssignedTo         *string                 `json:"assigned_to"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
	History            []StatusHistoryResponse `json:"history"`
	Events             []TicketEventResponse   `json:"events"`
	Timeline           []TimelineStepResponse  `json:"timeline"`
}
