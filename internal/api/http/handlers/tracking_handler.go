package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/isp-support-service/internal/api/dto"
	"github.com/spec-kit/isp-support-service/internal/service"
	"github.com/spec-kit/isp-support-service/internal/timeline"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

// TrackingHandler serves the anonymous folio lookup.
type TrackingHandler struct {
	service *service.TrackingService
}

// NewTrackingHandler constructs handler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: trackingService}
}

// Track POST /api/track. Failures never reach the global error
// middleware: the tracking contract answers every failure with
// {"found":false,"error":"..."} where error is a plain string.
func (h *TrackingHandler) Track(c *fiber.Ctx) error {
	var req dto.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		// Malformed body gets the same generic answer as a failed lookup.
		return trackFailure(c, apperrors.NewTrackingNotFound())
	}

	result, err := h.service.Track(c.UserContext(), req.Folio, req.PhoneLast4, c.IP())
	if err != nil {
		return trackFailure(c, err)
	}

	return c.JSON(dto.TrackResponse{
		Found:              true,
		Folio:              result.Folio,
		Type:               result.Type,
		TypeLabel:          result.TypeLabel,
		CurrentStatus:      result.CurrentStatus,
		StatusLabel:        result.StatusLabel,
		ScheduledDate:      result.ScheduledDate,
		ScheduledTimeStart: result.ScheduledTimeStart,
		ScheduledTimeEnd:   result.ScheduledTimeEnd,
		PublicNote:         result.PublicNote,
		CreatedAt:          result.CreatedAt,
		Timeline:           timelineSteps(result.Timeline),
	})
}

func trackFailure(c *fiber.Ctx, err error) error {
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code == "RATE_LIMITED" {
		if seconds, ok := domainErr.Details["retry_after_seconds"].(int); ok {
			c.Set("Retry-After", strconv.Itoa(seconds))
		}
	}
	return c.Status(domainErr.HTTPStatus).JSON(dto.TrackFailureResponse{
		Found: false,
		Error: domainErr.Message,
	})
}

func timelineSteps(steps []timeline.Step) []dto.TimelineStepResponse {
	out := make([]dto.TimelineStepResponse, 0, len(steps))
	for _, step := range steps {
		out = append(out, dto.TimelineStepResponse{
			Status:    step.Status,
			Label:     step.Label,
			Completed: step.Completed,
			Current:   step.Current,
			Date:      step.Date,
			Note:      step.Note,
		})
	}
	return out
}
