package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/ratelimit"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

type trackingFixture struct {
	svc     *TrackingService
	tickets *fakeTicketRepo
	history *fakeHistoryRepo
	events  *fakeEventRepo
	limiter *fakeLimiter
}

func newTrackingFixture(t *testing.T) *trackingFixture {
	t.Helper()
	tickets := newFakeTicketRepo()
	history := newFakeHistoryRepo()
	eventRepo := newFakeEventRepo()
	limiter := &fakeLimiter{decision: ratelimit.Decision{Allowed: true, Remaining: 4}}
	svc := NewTrackingService(tickets, history, eventRepo, limiter, zap.NewNop())
	return &trackingFixture{svc: svc, tickets: tickets, history: history, events: eventRepo, limiter: limiter}
}

func (f *trackingFixture) seedTrackedTicket() domain.Ticket {
	contacted := domain.StatusContacted
	ticket := domain.Ticket{
		ID:           "ticket-track",
		Folio:        "CON-2024-000042",
		Type:         domain.TicketTypeContract,
		Status:       domain.StatusScheduled,
		CustomerName: "María López",
		Phone:        "5512345678",
		PhoneLast4:   "5678",
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	email := "maria@example.com"
	address := "Av. Reforma 123"
	ticket.Email = &email
	ticket.Address = &address
	f.tickets.put(ticket)

	f.history.entries = []domain.StatusHistoryEntry{
		{ID: "h1", TicketID: ticket.ID, NewStatus: domain.StatusNew, CreatedAt: ticket.CreatedAt},
		{ID: "h2", TicketID: ticket.ID, PreviousStatus: ptrStatus(domain.StatusNew), NewStatus: domain.StatusValidation, CreatedAt: ticket.CreatedAt.Add(time.Hour)},
		{ID: "h3", TicketID: ticket.ID, PreviousStatus: ptrStatus(domain.StatusValidation), NewStatus: contacted, CreatedAt: ticket.CreatedAt.Add(2 * time.Hour)},
		{ID: "h4", TicketID: ticket.ID, PreviousStatus: &contacted, NewStatus: domain.StatusScheduled, CreatedAt: ticket.CreatedAt.Add(3 * time.Hour)},
	}
	return ticket
}

func ptrStatus(s domain.TicketStatus) *domain.TicketStatus { return &s }

func TestTrackReturnsSafeProjection(t *testing.T) {
	f := newTrackingFixture(t)
	f.seedTrackedTicket()

	result, err := f.svc.Track(context.Background(), "con-2024-000042", "5678", "203.0.113.9")
	require.NoError(t, err)

	assert.Equal(t, "CON-2024-000042", result.Folio)
	assert.Equal(t, domain.StatusScheduled, result.CurrentStatus)
	assert.Equal(t, "Instalación agendada", result.StatusLabel)
	require.Len(t, result.Timeline, 6)

	var currentCount int
	for _, step := range result.Timeline {
		if step.Current {
			currentCount++
			assert.Equal(t, domain.StatusScheduled, step.Status)
		}
	}
	assert.Equal(t, 1, currentCount)
}

func TestTrackWrongPhoneAndUnknownFolioAreIndistinguishable(t *testing.T) {
	f := newTrackingFixture(t)
	f.seedTrackedTicket()

	_, wrongPhoneErr := f.svc.Track(context.Background(), "CON-2024-000042", "0000", "203.0.113.9")
	_, unknownFolioErr := f.svc.Track(context.Background(), "CON-2024-999999", "5678", "203.0.113.9")
	_, badFolioErr := f.svc.Track(context.Background(), "CON-42", "5678", "203.0.113.9")
	_, badPhoneErr := f.svc.Track(context.Background(), "CON-2024-000042", "56-78", "203.0.113.9")

	require.Error(t, wrongPhoneErr)
	require.Error(t, unknownFolioErr)
	require.Error(t, badFolioErr)
	require.Error(t, badPhoneErr)

	reference := apperrors.ToDomainError(wrongPhoneErr)
	for _, err := range []error{unknownFolioErr, badFolioErr, badPhoneErr} {
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, reference.Code, domainErr.Code)
		assert.Equal(t, reference.Message, domainErr.Message)
		assert.Equal(t, reference.HTTPStatus, domainErr.HTTPStatus)
	}
}

func TestTrackMalformedInputSkipsLookup(t *testing.T) {
	f := newTrackingFixture(t)
	f.seedTrackedTicket()

	_, err := f.svc.Track(context.Background(), "not-a-folio", "abcd", "203.0.113.9")
	require.Error(t, err)
	assert.Zero(t, f.tickets.lookups)
}

func TestTrackRateLimitedBeforeAnyLookup(t *testing.T) {
	f := newTrackingFixture(t)
	f.seedTrackedTicket()
	f.limiter.decision = ratelimit.Decision{Allowed: false, RetryAfter: 30 * time.Second}

	_, err := f.svc.Track(context.Background(), "CON-2024-000042", "5678", "203.0.113.9")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "RATE_LIMITED", domainErr.Code)
	assert.Equal(t, 30, domainErr.Details["retry_after_seconds"])
	assert.Equal(t, 1, f.limiter.calls)
	assert.Zero(t, f.tickets.lookups)
	assert.Zero(t, f.history.lookups)
	assert.Zero(t, f.events.lookups)
}

func TestTrackFailsOpenWhenLimiterStoreIsDown(t *testing.T) {
	f := newTrackingFixture(t)
	f.seedTrackedTicket()
	f.limiter.err = errors.New("redis: connection refused")

	result, err := f.svc.Track(context.Background(), "CON-2024-000042", "5678", "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, "CON-2024-000042", result.Folio)
}

func TestTrackHidesInternalEvents(t *testing.T) {
	f := newTrackingFixture(t)
	ticket := f.seedTrackedTicket()

	f.events.events = []domain.TicketEvent{
		{ID: "e1", TicketID: ticket.ID, EventType: domain.EventTypeNotePublic, Title: "Actualización para el cliente", Content: "Visita confirmada", IsVisibleToCustomer: true, CreatedAt: ticket.CreatedAt.Add(3 * time.Hour)},
		{ID: "e2", TicketID: ticket.ID, EventType: domain.EventTypeNoteInternal, Title: "Nota interna", Content: "Cliente moroso en otro servicio", IsVisibleToCustomer: false, CreatedAt: ticket.CreatedAt.Add(3 * time.Hour)},
	}

	result, err := f.svc.Track(context.Background(), "CON-2024-000042", "5678", "203.0.113.9")
	require.NoError(t, err)

	for _, step := range result.Timeline {
		if step.Note != nil {
			assert.NotContains(t, *step.Note, "moroso")
		}
	}
}
