package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"softsell-api/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, req domain.ContactRequest) error
}

type PgContactRepository struct {
	pool *pgxpool.Pool
}

func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

func (r *PgContactRepository) Create(ctx context.Context, req domain.ContactRequest) error {
	const query = `
		INSERT INTO contact_requests (id, name, email, company, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.Name,
		req.Email,
		req.Company,
		req.Message,
		req.CreatedAt,
	)
	return err
}
