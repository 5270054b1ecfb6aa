package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"softsell-api/internal/domain"
)

type LicenseUploadRepository interface {
	Create(ctx context.Context, upload domain.LicenseUpload) error
}

type PgLicenseUploadRepository struct {
	pool *pgxpool.Pool
}

func NewPgLicenseUploadRepository(pool *pgxpool.Pool) *PgLicenseUploadRepository {
	return &PgLicenseUploadRepository{pool: pool}
}

func (r *PgLicenseUploadRepository) Create(ctx context.Context, upload domain.LicenseUpload) error {
	const query = `
		INSERT INTO license_uploads (
			id, license_type, license_key_hash, license_key_hint, additional_info,
			file_name, file_content_type, file_size, file_data, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	// El archivo es opcional: sin archivo las columnas quedan en NULL.
	var fileName, contentType, size, data interface{}
	if upload.File != nil {
		fileName = upload.File.Name
		contentType = upload.File.ContentType
		size = upload.File.Size
		data = upload.File.Data
	}

	_, err := r.pool.Exec(ctx, query,
		upload.ID,
		upload.LicenseType,
		upload.LicenseKeyHash,
		upload.LicenseKeyHint,
		upload.AdditionalInfo,
		fileName,
		contentType,
		size,
		data,
		upload.CreatedAt,
	)
	return err
}
