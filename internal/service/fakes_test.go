package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/events"
	"github.com/spec-kit/isp-support-service/internal/ratelimit"
	"github.com/spec-kit/isp-support-service/internal/repository"
)

// In-memory doubles for the repository interfaces. They mimic the real
// store closely enough for service-level behavior: GetByID hands out
// copies so services cannot mutate stored state without an update call.

type fakeTicketRepo struct {
	tickets map[string]domain.Ticket
	nextID  int
	lookups int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]domain.Ticket{}}
}

func (r *fakeTicketRepo) put(ticket domain.Ticket) {
	r.tickets[ticket.ID] = ticket
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	prefix := "CON"
	if ticket.Type == domain.TicketTypeFault {
		prefix = "FAL"
	}
	ticket.Folio = fmt.Sprintf("%s-2024-%06d", prefix, r.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByFolioAndPhone(_ context.Context, folio, phoneLast4 string) (*domain.Ticket, error) {
	r.lookups++
	for _, ticket := range r.tickets {
		if ticket.Folio == folio && ticket.PhoneLast4 == phoneLast4 {
			copied := ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = ticket.Status
	stored.ScheduledDate = ticket.ScheduledDate
	stored.ScheduledTimeStart = ticket.ScheduledTimeStart
	stored.ScheduledTimeEnd = ticket.ScheduledTimeEnd
	r.tickets[ticket.ID] = stored
	return nil
}

func (r *fakeTicketRepo) UpdatePublicNote(_ context.Context, ticketID, note string) error {
	stored, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.PublicNote = &note
	r.tickets[ticketID] = stored
	return nil
}

func (r *fakeTicketRepo) UpdateAssignee(_ context.Context, ticketID string, staffID *string) error {
	stored, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.AssignedTo = staffID
	r.tickets[ticketID] = stored
	return nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		out = append(out, ticket)
	}
	return out, nil
}

type fakeHistoryRepo struct {
	entries []domain.StatusHistoryEntry
	clock   time.Time
	lookups int
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.StatusHistoryEntry) error {
	r.clock = r.clock.Add(time.Minute)
	entry.ID = fmt.Sprintf("history-%d", len(r.entries)+1)
	entry.CreatedAt = r.clock
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.StatusHistoryEntry, error) {
	r.lookups++
	var out []domain.StatusHistoryEntry
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events  []domain.TicketEvent
	clock   time.Time
	lookups int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.TicketEvent) error {
	r.clock = r.clock.Add(time.Minute)
	event.ID = fmt.Sprintf("event-%d", len(r.events)+1)
	event.CreatedAt = r.clock
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketEvent, error) {
	var out []domain.TicketEvent
	for _, event := range r.events {
		if event.TicketID == ticketID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListPublicByTicket(_ context.Context, ticketID string) ([]domain.TicketEvent, error) {
	r.lookups++
	var out []domain.TicketEvent
	for _, event := range r.events {
		if event.TicketID == ticketID && event.IsVisibleToCustomer {
			out = append(out, event)
		}
	}
	return out, nil
}

type fakePackageRepo struct {
	packages map[string]domain.ServicePackage
}

func (r *fakePackageRepo) GetByID(_ context.Context, id string) (*domain.ServicePackage, error) {
	pkg, ok := r.packages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &pkg, nil
}

func (r *fakePackageRepo) ListActive(_ context.Context) ([]domain.ServicePackage, error) {
	var out []domain.ServicePackage
	for _, pkg := range r.packages {
		if pkg.IsActive {
			out = append(out, pkg)
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	members map[string]domain.StaffMember
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &member, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	for _, member := range r.members {
		if member.Email == email {
			copied := member
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeCoverageRepo struct {
	zones []domain.CoverageZone
}

func (r *fakeCoverageRepo) ListByPostalCode(_ context.Context, postalCode string) ([]domain.CoverageZone, error) {
	var out []domain.CoverageZone
	for _, zone := range r.zones {
		if zone.PostalCode == postalCode && zone.IsActive {
			out = append(out, zone)
		}
	}
	return out, nil
}

type recordingTxManager struct {
	calls int
}

func (m *recordingTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fakeLimiter struct {
	decision ratelimit.Decision
	err      error
	calls    int
}

func (l *fakeLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	l.calls++
	return l.decision, l.err
}
