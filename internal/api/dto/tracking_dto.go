package dto

import (
	"time"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// TrackRequest payload for the anonymous tracking endpoint.
type TrackRequest struct {
	Folio      string `json:"folio"`
	PhoneLast4 string `json:"phone_last4"`
}

// TimelineStepResponse is one derived progress step.
type TimelineStepResponse struct {
	Status    domain.TicketStatus `json:"status"`
	Label     string              `json:"label"`
	Completed bool                `json:"completed"`
	Current   bool                `json:"current"`
	Date      *time.Time          `json:"date,omitempty"`
	Note      *string             `json:"note,omitempty"`
}

// TrackFailureResponse is the single answer shape for every tracking
// failure: found is always false and error is a plain message string.
type TrackFailureResponse struct {
	Found bool   `json:"found"`
	Error string `json:"error"`
}

// TrackResponse is the safe projection for anonymous customers.
type TrackResponse struct {
	Found              bool                   `json:"found"`
	Folio              string                 `json:"folio"`
	Type               domain.TicketType      `json:"type"`
	TypeLabel          string                 `json:"type_label"`
	CurrentStatus      domain.TicketStatus    `json:"current_status"`
	StatusLabel        string                 `json:"status_label"`
	ScheduledDate      *time.Time             `json:"scheduled_date,omitempty"`
	ScheduledTimeStart *string                `json:"scheduled_time_start,omitempty"`
	ScheduledTimeEnd   *string                `json:"scheduled_time_end,omitempty"`
	PublicNote         *string                `json:"public_note,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	Timeline           []TimelineStepResponse `json:"timeline"`
}
