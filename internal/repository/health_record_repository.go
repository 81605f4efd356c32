package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

// HealthRecordRepository persists daily health-check submissions.
type HealthRecordRepository interface {
	Create(ctx context.Context, record *domain.HealthRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.HealthRecord, error)
}

type healthRecordRepository struct {
	pool *pgxpool.Pool
}

// NewHealthRecordRepository returns a Postgres-backed implementation.
func NewHealthRecordRepository(pool *pgxpool.Pool) HealthRecordRepository {
	return &healthRecordRepository{pool: pool}
}

func (r *healthRecordRepository) Create(ctx context.Context, record *domain.HealthRecord) error {
	const query = `
        INSERT INTO health_records (user_id, total_cholesterol, hdl_cholesterol, ldl_cholesterol,
            blood_pressure, weight, height, diabetes_status, injury_description, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, submitted_at`

	return r.pool.QueryRow(ctx, query,
		record.UserID,
		record.TotalCholesterol,
		record.HDLCholesterol,
		record.LDLCholesterol,
		record.BloodPressure,
		record.Weight,
		record.Height,
		record.DiabetesStatus,
		record.InjuryDescription,
		record.Notes,
	).Scan(&record.ID, &record.SubmittedAt)
}

func (r *healthRecordRepository) ListByUser(ctx context.Context, userID string) ([]domain.HealthRecord, error) {
	const query = `
        SELECT id, user_id, total_cholesterol, hdl_cholesterol, ldl_cholesterol,
            blood_pressure, weight, height, diabetes_status, injury_description, notes, submitted_at
        FROM health_records WHERE user_id=$1 ORDER BY submitted_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HealthRecord
	for rows.Next() {
		var record domain.HealthRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.TotalCholesterol,
			&record.HDLCholesterol,
			&record.LDLCholesterol,
			&record.BloodPressure,
			&record.Weight,
			&record.Height,
			&record.DiabetesStatus,
			&record.InjuryDescription,
			&record.Notes,
			&record.SubmittedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
