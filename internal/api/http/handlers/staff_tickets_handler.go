package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/isp-support-service/internal/api/dto"
	"github.com/spec-kit/isp-support-service/internal/auth"
	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/repository"
	"github.com/spec-kit/isp-support-service/internal/service"
	"github.com/spec-kit/isp-support-service/internal/timeline"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

// StaffTicketsHandler manages internal ticket operations.
type StaffTicketsHandler struct {
	service *service.TicketService
}

// NewStaffTicketsHandler constructs handler.
func NewStaffTicketsHandler(ticketService *service.TicketService) *StaffTicketsHandler {
	return &StaffTicketsHandler{service: ticketService}
}

// List GET /admin/tickets.
func (h *StaffTicketsHandler) List(c *fiber.Ctx) error {
	filter := parseTicketQuery(c)
	tickets, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /admin/tickets/:id.
func (h *StaffTicketsHandler) Get(c *fiber.Ctx) error {
	ticket, history, events, err := h.service.GetDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, history, events)})
}

// Transition POST /admin/tickets/:id/transition.
func (h *StaffTicketsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	var schedule *domain.ScheduleInfo
	if req.Status == domain.StatusScheduled {
		if req.Date == nil || req.TimeStart == nil || req.TimeEnd == nil {
			return apperrors.NewValidationError("scheduled_date, scheduled_time_start, scheduled_time_end required for SCHEDULED", nil)
		}
		schedule = &domain.ScheduleInfo{Date: *req.Date, TimeStart: *req.TimeStart, TimeEnd: *req.TimeEnd}
	}

	ticket, err := h.service.Transition(c.UserContext(), principal.Staff.ID, c.Params("id"), req.Status, req.Reason, schedule)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AddNote POST /admin/tickets/:id/notes.
func (h *StaffTicketsHandler) AddNote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	note, err := h.service.AddNote(c.UserContext(), principal.Staff.ID, c.Params("id"), req.Content, req.IsPublic)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": eventResponse(note)})
}

// Assign POST /admin/tickets/:id/assign.
func (h *StaffTicketsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Assign(c.UserContext(), principal.Staff.ID, c.Params("id"), req.StaffID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if typeStr := c.Query("type"); typeStr != "" {
		ticketType := domain.TicketType(typeStr)
		filter.Type = &ticketType
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	if assignee := c.Query("assigned_to"); assignee != "" {
		filter.AssignedTo = &assignee
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:           ticket.ID,
		Folio:        ticket.Folio,
		Type:         ticket.Type,
		Status:       ticket.Status,
		StatusLabel:  domain.StatusLabel(ticket.Type, ticket.Status),
		CustomerName: ticket.CustomerName,
		Phone:        ticket.Phone,
		AssignedTo:   ticket.AssignedTo,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, history []domain.StatusHistoryEntry, events []domain.TicketEvent) dto.TicketDetailResponse {
	historyResp := make([]dto.StatusHistoryResponse, 0, len(history))
	for _, entry := range history {
		historyResp = append(historyResp, dto.StatusHistoryResponse{
			ID:             entry.ID,
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			ChangeReason:   entry.ChangeReason,
			ChangedBy:      entry.ChangedBy,
			CreatedAt:      entry.CreatedAt,
		})
	}
	eventsResp := make([]dto.TicketEventResponse, 0, len(events))
	publicEvents := make([]domain.TicketEvent, 0, len(events))
	for _, event := range events {
		eventsResp = append(eventsResp, eventResponse(&event))
		if event.IsVisibleToCustomer {
			publicEvents = append(publicEvents, event)
		}
	}
	return dto.TicketDetailResponse{
		ID:                 ticket.ID,
		Folio:              ticket.Folio,
		Type:               ticket.Type,
		Status:             ticket.Status,
		StatusLabel:        domain.StatusLabel(ticket.Type, ticket.Status),
		CustomerName:       ticket.CustomerName,
		Phone:              ticket.Phone,
		Email:              ticket.Email,
		Address:            ticket.Address,
		PostalCode:         ticket.PostalCode,
		PackageID:          ticket.PackageID,
		ScheduledDate:      ticket.ScheduledDate,
		ScheduledTimeStart: ticket.ScheduledTimeStart,
		ScheduledTimeEnd:   ticket.ScheduledTimeEnd,
		PublicNote:         ticket.PublicNote,
		AssignedTo:         ticket.AssignedTo,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
		History:            historyResp,
		Events:             eventsResp,
		Timeline:           timelineSteps(timeline.Build(ticket.Type, ticket.Status, history, publicEvents)),
	}
}

func eventResponse(event *domain.TicketEvent) dto.TicketEventResponse {
	return dto.TicketEventResponse{
		ID:                  event.ID,
		EventType:           event.EventType,
		Title:               event.Title,
		Content:             event.Content,
		IsVisibleToCustomer: event.IsVisibleToCustomer,
		CreatedBy:           event.CreatedBy,
		CreatedAt:           event.CreatedAt,
	}
}
