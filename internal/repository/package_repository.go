package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// PackageRepository reads the service plan catalog.
type PackageRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServicePackage, error)
	ListActive(ctx context.Context) ([]domain.ServicePackage, error)
}

type packageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository builds repository.
func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

func (r *packageRepository) GetByID(ctx context.Context, id string) (*domain.ServicePackage, error) {
	const query = `
        SELECT id, name, speed_mbps, price_monthly, description, features, is_active, created_at
        FROM service_packages WHERE id=$1`
	var pkg domain.ServicePackage
	if err := querierFor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.SpeedMbps,
		&pkg.PriceMonthly,
		&pkg.Description,
		&pkg.Features,
		&pkg.IsActive,
		&pkg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) ListActive(ctx context.Context) ([]domain.ServicePackage, error) {
	const query = `
        SELECT id, name, speed_mbps, price_monthly, description, features, is_active, created_at
        FROM service_packages WHERE is_active ORDER BY price_monthly ASC`
	rows, err := querierFor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServicePackage
	for rows.Next() {
		var pkg domain.ServicePackage
		if err := rows.Scan(
			&pkg.ID,
			&pkg.Name,
			&pkg.SpeedMbps,
			&pkg.PriceMonthly,
			&pkg.Description,
			&pkg.Features,
			&pkg.IsActive,
			&pkg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, rows.Err()
}
