package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// TicketFilter captures staff listing parameters.
type TicketFilter struct {
	Type        *domain.TicketType
	Statuses    []domain.TicketStatus
	AssignedTo  *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketRepository encapsulates ticket persistence. Create assigns the
// folio from the per-type sequence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByFolioAndPhone(ctx context.Context, folio, phoneLast4 string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, ticket *domain.Ticket) error
	UpdatePublicNote(ctx context.Context, ticketID, note string) error
	UpdateAssignee(ctx context.Context, ticketID string, staffID *string) error
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

// ticketColumns maps both status columns back into the single domain
// Status field; exactly one is non-null per the table check constraint.
const ticketColumns = `id, folio, type, COALESCE(contract_status, fault_status),
       customer_name, phone, phone_last4, email, address, postal_code, package_id,
       scheduled_date, scheduled_time_start, scheduled_time_end,
       public_note, assigned_to, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	q := querierFor(ctx, r.pool)

	folio, err := nextFolio(ctx, q, ticket.Type)
	if err != nil {
		return err
	}
	ticket.Folio = folio

	var contractStatus, faultStatus *domain.TicketStatus
	if ticket.Type == domain.TicketTypeContract {
		contractStatus = &ticket.Status
	} else {
		faultStatus = &ticket.Status
	}

	const query = `
        INSERT INTO tickets (folio, type, contract_status, fault_status, customer_name,
            phone, phone_last4, email, address, postal_code, package_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return q.QueryRow(ctx, query,
		ticket.Folio,
		ticket.Type,
		contractStatus,
		faultStatus,
		ticket.CustomerName,
		ticket.Phone,
		ticket.PhoneLast4,
		ticket.Email,
		ticket.Address,
		ticket.PostalCode,
		ticket.PackageID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByFolioAndPhone(ctx context.Context, folio, phoneLast4 string) (*domain.Ticket, error) {
	// Both predicates in one query: a wrong phone and an unknown folio are
	// indistinguishable to the caller.
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE folio=$1 AND phone_last4=$2`, ticketColumns)
	var ticket domain.Ticket
	if err := r.scanOne(querierFor(ctx, r.pool).QueryRow(ctx, query, folio, phoneLast4), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateStatus persists the ticket's status and schedule fields onto the
// type-appropriate columns.
func (r *ticketRepository) UpdateStatus(ctx context.Context, ticket *domain.Ticket) error {
	var contractStatus, faultStatus *domain.TicketStatus
	if ticket.Type == domain.TicketTypeContract {
		contractStatus = &ticket.Status
	} else {
		faultStatus = &ticket.Status
	}

	const query = `
        UPDATE tickets SET contract_status=$1, fault_status=$2,
            scheduled_date=$3, scheduled_time_start=$4, scheduled_time_end=$5,
            updated_at=NOW()
        WHERE id=$6`
	cmd, err := querierFor(ctx, r.pool).Exec(ctx, query,
		contractStatus,
		faultStatus,
		ticket.ScheduledDate,
		ticket.ScheduledTimeStart,
		ticket.ScheduledTimeEnd,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) UpdatePublicNote(ctx context.Context, ticketID, note string) error {
	const query = `UPDATE tickets SET public_note=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := querierFor(ctx, r.pool).Exec(ctx, query, note, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) UpdateAssignee(ctx context.Context, ticketID string, staffID *string) error {
	const query = `UPDATE tickets SET assigned_to=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := querierFor(ctx, r.pool).Exec(ctx, query, staffID, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := fmt.Sprintf(`SELECT %s FROM tickets`, ticketColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		in := strings.Join(placeholders, ",")
		clauses = append(clauses, fmt.Sprintf("COALESCE(contract_status, fault_status) IN (%s)", in))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(folio) LIKE %s OR LOWER(customer_name) LIKE %s OR phone LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := querierFor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := r.scanOne(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.scanOne(querierFor(ctx, r.pool).QueryRow(ctx, query, arg), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) scanOne(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.Folio,
		&ticket.Type,
		&ticket.Status,
		&ticket.CustomerName,
		&ticket.Phone,
		&ticket.PhoneLast4,
		&ticket.Email,
		&ticket.Address,
		&ticket.PostalCode,
		&ticket.PackageID,
		&ticket.ScheduledDate,
		&ticket.ScheduledTimeStart,
		&ticket.ScheduledTimeEnd,
		&ticket.PublicNote,
		&ticket.AssignedTo,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

// nextFolio builds CON-<year>-NNNNNN / FAL-<year>-NNNNNN from the per-type
// sequences.
func nextFolio(ctx context.Context, q Querier, ticketType domain.TicketType) (string, error) {
	prefix := "CON"
	sequence := "folio_contract_seq"
	if ticketType == domain.TicketTypeFault {
		prefix = "FAL"
		sequence = "folio_fault_seq"
	}
	var n int64
	if err := q.QueryRow(ctx, `SELECT nextval($1)`, sequence).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%06d", prefix, time.Now().Year(), n), nil
}
