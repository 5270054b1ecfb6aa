package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"softsell-api/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, details domain.PaymentDetails) error
}

type PgPaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPgPaymentRepository(pool *pgxpool.Pool) *PgPaymentRepository {
	return &PgPaymentRepository{pool: pool}
}

func (r *PgPaymentRepository) Create(ctx context.Context, details domain.PaymentDetails) error {
	const query = `
		INSERT INTO payment_details (id, full_name, company_name, payment_method, payment_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		details.ID,
		details.FullName,
		details.CompanyName,
		details.PaymentMethod,
		details.PaymentDetails,
		details.CreatedAt,
	)
	return err
}
