package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"softsell-api/internal/domain"
)

type ValuationRepository interface {
	Create(ctx context.Context, req domain.ValuationRequest) error
}

type PgValuationRepository struct {
	pool *pgxpool.Pool
}

func NewPgValuationRepository(pool *pgxpool.Pool) *PgValuationRepository {
	return &PgValuationRepository{pool: pool}
}

func (r *PgValuationRepository) Create(ctx context.Context, req domain.ValuationRequest) error {
	const query = `
		INSERT INTO valuation_requests (id, software_name, version, quantity, purchase_date, contact_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.SoftwareName,
		req.Version,
		req.Quantity,
		req.PurchaseDate,
		req.ContactEmail,
		req.CreatedAt,
	)
	return err
}
