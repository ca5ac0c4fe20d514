package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// CoverageRepository reads coverage zones for the contracting funnel.
type CoverageRepository interface {
	ListByPostalCode(ctx context.Context, postalCode string) ([]domain.CoverageZone, error)
}

type coverageRepository struct {
	pool *pgxpool.Pool
}

// NewCoverageRepository builds repository.
func NewCoverageRepository(pool *pgxpool.Pool) CoverageRepository {
	return &coverageRepository{pool: pool}
}

func (r *coverageRepository) ListByPostalCode(ctx context.Context, postalCode string) ([]domain.CoverageZone, error) {
	const query = `
        SELECT id, postal_code, municipality, community, status, is_active, created_at
        FROM coverage_zones WHERE postal_code=$1 AND is_active ORDER BY community ASC`
	rows, err := querierFor(ctx, r.pool).Query(ctx, query, postalCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CoverageZone
	for rows.Next() {
		var zone domain.CoverageZone
		if err := rows.Scan(
			&zone.ID,
			&zone.PostalCode,
			&zone.Municipality,
			&zone.Community,
			&zone.Status,
			&zone.IsActive,
			&zone.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, zone)
	}
	return result, rows.Err()
}
