package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/events"
	"github.com/spec-kit/isp-support-service/internal/repository"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

// TicketService coordinates ticket workflows: creation, the status
// transition engine, notes, and assignment.
type TicketService struct {
	tickets    repository.TicketRepository
	history    repository.StatusHistoryRepository
	events     repository.TicketEventRepository
	packages   repository.PackageRepository
	staff      repository.StaffRepository
	tx         repository.TxManager
	dispatcher events.Dispatcher
	policy     domain.TransitionPolicy
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	HistoryRepo repository.StatusHistoryRepository
	EventRepo   repository.TicketEventRepository
	PackageRepo repository.PackageRepository
	StaffRepo   repository.StaffRepository
	Tx          repository.TxManager
	Dispatcher  events.Dispatcher
	Policy      domain.TransitionPolicy
}

// TicketCreateInput describes a customer submission.
type TicketCreateInput struct {
	Type         domain.TicketType
	CustomerName string
	Phone        string
	Email        *string
	Address      *string
	PostalCode   *string
	PackageID    *string
	Description  string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	policy := deps.Policy
	if policy == nil {
		policy = domain.DefaultTransitions()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		history:    deps.HistoryRepo,
		events:     deps.EventRepo,
		packages:   deps.PackageRepo,
		staff:      deps.StaffRepo,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
		policy:     policy,
	}
}

// Create registers a new ticket in NEW status, writes the first history
// entry (previous status nil) and the opening event.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if !domain.ValidTicketType(input.Type) {
		return nil, apperrors.NewValidationError("unknown ticket type", nil)
	}
	name := strings.TrimSpace(input.CustomerName)
	phone := normalizePhone(input.Phone)
	if name == "" || len(phone) < 4 {
		return nil, apperrors.NewValidationError("customer name and a valid phone are required", nil)
	}
	if input.Type == domain.TicketTypeContract && input.PackageID != nil {
		pkg, err := s.packages.GetByID(ctx, *input.PackageID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown package", nil)
			}
			return nil, err
		}
		if !pkg.IsActive {
			return nil, apperrors.NewValidationError("package no longer offered", nil)
		}
	}

	ticket := &domain.Ticket{
		Type:         input.Type,
		Status:       domain.StatusNew,
		CustomerName: name,
		Phone:        phone,
		PhoneLast4:   phone[len(phone)-4:],
		Email:        input.Email,
		Address:      input.Address,
		PostalCode:   input.PostalCode,
		PackageID:    input.PackageID,
	}

	err := s.withinTx(ctx, func(txCtx context.Context) error {
		if err := s.tickets.Create(txCtx, ticket); err != nil {
			return err
		}
		entry := &domain.StatusHistoryEntry{
			TicketID:  ticket.ID,
			NewStatus: domain.StatusNew,
		}
		if err := s.history.Create(txCtx, entry); err != nil {
			return err
		}
		opening := &domain.TicketEvent{
			TicketID:            ticket.ID,
			EventType:           domain.EventTypeStatusChange,
			Title:               "Solicitud registrada: " + domain.StatusLabel(ticket.Type, domain.StatusNew),
			Content:             strings.TrimSpace(input.Description),
			IsVisibleToCustomer: true,
		}
		return s.events.Create(txCtx, opening)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Folio:    ticket.Folio,
		Payload: events.TicketCreatedPayload{
			Type:         ticket.Type,
			CustomerName: ticket.CustomerName,
			PostalCode:   ticket.PostalCode,
			PackageID:    ticket.PackageID,
		},
	})
	return ticket, nil
}

// Transition applies a status change: updates the type-appropriate status
// field (and schedule fields for SCHEDULED), appends a history entry whose
// previous status is the one read inside the transaction, and appends a
// status_change event. The three writes commit or fail together.
func (s *TicketService) Transition(ctx context.Context, actorID, ticketID string, newStatus domain.TicketStatus, reason *string, schedule *domain.ScheduleInfo) (*domain.Ticket, error) {
	var (
		ticket   *domain.Ticket
		previous domain.TicketStatus
	)
	err := s.withinTx(ctx, func(txCtx context.Context) error {
		var err error
		ticket, err = s.tickets.GetByID(txCtx, ticketID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("ticket", nil)
			}
			return err
		}
		if !domain.ValidStatus(ticket.Type, newStatus) {
			return apperrors.NewValidationError("status not valid for ticket type", map[string]any{
				"type":   ticket.Type,
				"status": newStatus,
			})
		}
		if !s.policy.Allowed(ticket.Type, ticket.Status, newStatus) {
			return apperrors.NewConflict("status transition not allowed", map[string]any{
				"from": ticket.Status,
				"to":   newStatus,
			})
		}

		previous = ticket.Status
		ticket.Status = newStatus
		if newStatus == domain.StatusScheduled && schedule != nil {
			date := schedule.Date
			start := schedule.TimeStart
			end := schedule.TimeEnd
			ticket.ScheduledDate = &date
			ticket.ScheduledTimeStart = &start
			ticket.ScheduledTimeEnd = &end
		}
		if err := s.tickets.UpdateStatus(txCtx, ticket); err != nil {
			return err
		}

		// previous comes from the row read in this transaction, never from
		// the caller, so the audit trail cannot be falsified.
		entry := &domain.StatusHistoryEntry{
			TicketID:       ticket.ID,
			PreviousStatus: &previous,
			NewStatus:      newStatus,
			ChangeReason:   reason,
			ChangedBy:      &actorID,
		}
		if err := s.history.Create(txCtx, entry); err != nil {
			return err
		}

		annotation := &domain.TicketEvent{
			TicketID:            ticket.ID,
			EventType:           domain.EventTypeStatusChange,
			Title:               "Estado actualizado: " + domain.StatusLabel(ticket.Type, newStatus),
			IsVisibleToCustomer: true,
			CreatedBy:           &actorID,
		}
		if reason != nil {
			annotation.Content = *reason
		}
		return s.events.Create(txCtx, annotation)
	})
	if err != nil {
		return nil, err
	}

	payload := events.TicketStatusChangedPayload{
		Type:      ticket.Type,
		OldStatus: previous,
		NewStatus: ticket.Status,
	}
	if reason != nil {
		payload.Reason = *reason
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Folio:    ticket.Folio,
		ActorID:  actorID,
		Payload:  payload,
	})
	return ticket, nil
}

// AddNote appends a note event. Public notes additionally overwrite the
// ticket's denormalized public_note, which is a display cache only; the
// event log remains the authoritative record.
func (s *TicketService) AddNote(ctx context.Context, actorID, ticketID, content string, isPublic bool) (*domain.TicketEvent, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("note content required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}

	eventType := domain.EventTypeNoteInternal
	title := "Nota interna"
	if isPublic {
		eventType = domain.EventTypeNotePublic
		title = "Actualización para el cliente"
	}
	note := &domain.TicketEvent{
		TicketID:            ticket.ID,
		EventType:           eventType,
		Title:               title,
		Content:             content,
		IsVisibleToCustomer: isPublic,
		CreatedBy:           &actorID,
	}

	err = s.withinTx(ctx, func(txCtx context.Context) error {
		if err := s.events.Create(txCtx, note); err != nil {
			return err
		}
		if isPublic {
			return s.tickets.UpdatePublicNote(txCtx, ticket.ID, content)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketNoteAdded,
		TicketID: ticket.ID,
		Folio:    ticket.Folio,
		ActorID:  actorID,
		Payload: events.TicketNoteAddedPayload{
			EventID:  note.ID,
			IsPublic: isPublic,
			Preview:  stringPreview(content, 120),
		},
	})
	return note, nil
}

// Assign routes a ticket to a staff member; nil clears the assignment.
func (s *TicketService) Assign(ctx context.Context, actorID, ticketID string, staffID *string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	title := "Asignación retirada"
	if staffID != nil {
		member, err := s.staff.GetByID(ctx, *staffID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown staff member", nil)
			}
			return nil, err
		}
		if !member.IsActive {
			return nil, apperrors.NewValidationError("staff member inactive", nil)
		}
		title = "Asignado a " + member.Name
	}

	annotation := &domain.TicketEvent{
		TicketID:  ticket.ID,
		EventType: domain.EventTypeAssignment,
		Title:     title,
		CreatedBy: &actorID,
	}
	err = s.withinTx(ctx, func(txCtx context.Context) error {
		if err := s.tickets.UpdateAssignee(txCtx, ticket.ID, staffID); err != nil {
			return err
		}
		return s.events.Create(txCtx, annotation)
	})
	if err != nil {
		return nil, err
	}
	ticket.AssignedTo = staffID

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Folio:    ticket.Folio,
		ActorID:  actorID,
		Payload:  events.TicketAssignedPayload{AssignedTo: staffID},
	})
	return ticket, nil
}

// GetDetail returns a ticket with its full history and event log for staff.
func (s *TicketService) GetDetail(ctx context.Context, ticketID string) (*domain.Ticket, []domain.StatusHistoryEntry, []domain.TicketEvent, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, nil, nil, err
	}
	history, err := s.history.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, err
	}
	ticketEvents, err := s.events.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, err
	}
	return ticket, history, ticketEvents, nil
}

// List returns tickets matching the staff filter.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, filter)
}

// withinTx runs fn transactionally when a TxManager is configured and
// directly otherwise (test doubles).
func (s *TicketService) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTx(ctx, fn)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func normalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
