package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// TicketEventRepository stores the append-only event log of a ticket.
type TicketEventRepository interface {
	Create(ctx context.Context, event *domain.TicketEvent) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error)
	ListPublicByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error)
}

type ticketEventRepository struct {
	pool *pgxpool.Pool
}

// NewTicketEventRepository builds repository.
func NewTicketEventRepository(pool *pgxpool.Pool) TicketEventRepository {
	return &ticketEventRepository{pool: pool}
}

func (r *ticketEventRepository) Create(ctx context.Context, event *domain.TicketEvent) error {
	const query = `
        INSERT INTO ticket_events (ticket_id, event_type, title, content, is_visible_to_customer, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return querierFor(ctx, r.pool).QueryRow(ctx, query,
		event.TicketID,
		event.EventType,
		event.Title,
		event.Content,
		event.IsVisibleToCustomer,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *ticketEventRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error) {
	const query = `
        SELECT id, ticket_id, event_type, title, content, is_visible_to_customer, created_by, created_at
        FROM ticket_events WHERE ticket_id=$1 ORDER BY created_at ASC`
	return r.list(ctx, query, ticketID)
}

// ListPublicByTicket returns only customer-visible events, for the
// anonymous tracking projection.
func (r *ticketEventRepository) ListPublicByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error) {
	const query = `
        SELECT id, ticket_id, event_type, title, content, is_visible_to_customer, created_by, created_at
        FROM ticket_events WHERE ticket_id=$1 AND is_visible_to_customer ORDER BY created_at ASC`
	return r.list(ctx, query, ticketID)
}

func (r *ticketEventRepository) list(ctx context.Context, query, ticketID string) ([]domain.TicketEvent, error) {
	rows, err := querierFor(ctx, r.pool).Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketEvent
	for rows.Next() {
		var event domain.TicketEvent
		if err := rows.Scan(
			&event.ID,
			&event.TicketID,
			&event.EventType,
			&event.Title,
			&event.Content,
			&event.IsVisibleToCustomer,
			&event.CreatedBy,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
