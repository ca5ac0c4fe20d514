package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/ratelimit"
	"github.com/spec-kit/isp-support-service/internal/repository"
	"github.com/spec-kit/isp-support-service/internal/timeline"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

var (
	folioPattern = regexp.MustCompile(`^(CON|FAL)-[0-9]{4}-[0-9]{6}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{4}$`)
)

// TrackingService serves the anonymous folio lookup. Every failure after
// the rate limit check collapses into one generic not-found so callers
// cannot tell a wrong phone from an unknown folio.
type TrackingService struct {
	tickets repository.TicketRepository
	history repository.StatusHistoryRepository
	events  repository.TicketEventRepository
	limiter ratelimit.Limiter
	logger  *zap.Logger
}

// TrackingResult is the safe projection returned to anonymous customers.
// Address, email, internal notes and assignee never appear here.
type TrackingResult struct {
	Folio              string
	Type               domain.TicketType
	TypeLabel          string
	CurrentStatus      domain.TicketStatus
	StatusLabel        string
	ScheduledDate      *time.Time
	ScheduledTimeStart *string
	ScheduledTimeEnd   *string
	PublicNote         *string
	CreatedAt          time.Time
	Timeline           []timeline.Step
}

// NewTrackingService constructs the service.
func NewTrackingService(tickets repository.TicketRepository, history repository.StatusHistoryRepository, events repository.TicketEventRepository, limiter ratelimit.Limiter, logger *zap.Logger) *TrackingService {
	return &TrackingService{
		tickets: tickets,
		history: history,
		events:  events,
		limiter: limiter,
		logger:  logger,
	}
}

// Track authorizes read access to one ticket by folio + phone suffix and
// rebuilds its timeline. The rate limit is consumed before any validation
// or lookup.
func (s *TrackingService) Track(ctx context.Context, folio, phoneLast4, clientIP string) (*TrackingResult, error) {
	if s.limiter != nil {
		decision, err := s.limiter.Allow(ctx, "track:"+clientIP)
		if err != nil {
			// Limiter store unreachable: let the request through rather
			// than taking tracking down with it.
			s.logger.Warn("tracking rate limiter unavailable", zap.Error(err))
		} else if !decision.Allowed {
			return nil, apperrors.NewRateLimited(decision.RetryAfter)
		}
	}

	folio = strings.ToUpper(strings.TrimSpace(folio))
	phoneLast4 = strings.TrimSpace(phoneLast4)
	if !folioPattern.MatchString(folio) || !phonePattern.MatchString(phoneLast4) {
		return nil, apperrors.NewTrackingNotFound()
	}

	ticket, err := s.tickets.GetByFolioAndPhone(ctx, folio, phoneLast4)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewTrackingNotFound()
		}
		s.logger.Error("tracking lookup failed", zap.String("folio", folio), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	history, err := s.history.ListByTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.Error("tracking history load failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	publicEvents, err := s.events.ListPublicByTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.Error("tracking events load failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	return &TrackingResult{
		Folio:              ticket.Folio,
		Type:               ticket.Type,
		TypeLabel:          domain.TypeLabel(ticket.Type),
		CurrentStatus:      ticket.Status,
		StatusLabel:        domain.StatusLabel(ticket.Type, ticket.Status),
		ScheduledDate:      ticket.ScheduledDate,
		ScheduledTimeStart: ticket.ScheduledTimeStart,
		ScheduledTimeEnd:   ticket.ScheduledTimeEnd,
		PublicNote:         ticket.PublicNote,
		CreatedAt:          ticket.CreatedAt,
		Timeline:           timeline.Build(ticket.Type, ticket.Status, history, publicEvents),
	}, nil
}
