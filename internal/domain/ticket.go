package domain

import "time"

// TicketType discriminates contracting requests from fault reports.
type TicketType string

const (
	TicketTypeContract TicketType = "contract"
	TicketTypeFault    TicketType = "fault"
)

// TicketStatus enumerates lifecycle states across both ticket types.
// Which values are valid for a given ticket depends on its type; see status.go.
type TicketStatus string

const (
	StatusNew           TicketStatus = "NEW"
	StatusValidation    TicketStatus = "VALIDATION"
	StatusContacted     TicketStatus = "CONTACTED"
	StatusScheduled     TicketStatus = "SCHEDULED"
	StatusInRoute       TicketStatus = "IN_ROUTE"
	StatusInstalled     TicketStatus = "INSTALLED"
	StatusCancelled     TicketStatus = "CANCELLED"
	StatusOutOfCoverage TicketStatus = "OUT_OF_COVERAGE"
	StatusDuplicate     TicketStatus = "DUPLICATE"
	StatusDiagnosis     TicketStatus = "DIAGNOSIS"
	StatusInProgress    TicketStatus = "IN_PROGRESS"
	StatusResolved      TicketStatus = "RESOLVED"
	StatusClosed        TicketStatus = "CLOSED"
	StatusNotApplicable TicketStatus = "NOT_APPLICABLE"
)

// Ticket is the aggregate for contracting requests and fault reports.
// Status carries the value of the type-appropriate status column; the
// repository maps it onto contract_status or fault_status based on Type,
// so exactly one of the two columns is ever populated.
type Ticket struct {
	ID                 string
	Folio              string
	Type               TicketType
	Status             TicketStatus
	CustomerName       string
	Phone              string
	PhoneLast4         string
	Email              *string
	Address            *string
	PostalCode         *string
	PackageID          *string
	ScheduledDate      *time.Time
	ScheduledTimeStart *string
	ScheduledTimeEnd   *string
	PublicNote         *string
	AssignedTo         *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ScheduleInfo carries visit scheduling data for SCHEDULED transitions.
type ScheduleInfo struct {
	Date      time.Time
	TimeStart string
	TimeEnd   string
}
