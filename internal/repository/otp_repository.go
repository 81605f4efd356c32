package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

// OTPRepository persists the active one-time passcode per email address.
type OTPRepository interface {
	Upsert(ctx context.Context, record *domain.OTPRecord) error
	GetByEmail(ctx context.Context, email string) (*domain.OTPRecord, error)
	Delete(ctx context.Context, email string) error
}

type otpRepository struct {
	pool *pgxpool.Pool
}

// NewOTPRepository returns a Postgres-backed implementation.
func NewOTPRepository(pool *pgxpool.Pool) OTPRepository {
	return &otpRepository{pool: pool}
}

// Upsert stores the code for the email, overwriting any prior unconsumed code.
func (r *otpRepository) Upsert(ctx context.Context, record *domain.OTPRecord) error {
	const query = `
        INSERT INTO otps (email, code, issued_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, issued_at = EXCLUDED.issued_at`

	_, err := r.pool.Exec(ctx, query, record.Email, record.Code, record.IssuedAt)
	return err
}

func (r *otpRepository) GetByEmail(ctx context.Context, email string) (*domain.OTPRecord, error) {
	const query = `SELECT email, code, issued_at FROM otps WHERE email=$1`

	var record domain.OTPRecord
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&record.Email,
		&record.Code,
		&record.IssuedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *otpRepository) Delete(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM otps WHERE email=$1`, email)
	return err
}
