package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

// PredictionRepository persists disease-prediction results for user history.
type PredictionRepository interface {
	Create(ctx context.Context, prediction *domain.Prediction) error
	ListByUser(ctx context.Context, userID string) ([]domain.Prediction, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type predictionRepository struct {
	pool *pgxpool.Pool
}

// NewPredictionRepository returns a Postgres-backed implementation.
func NewPredictionRepository(pool *pgxpool.Pool) PredictionRepository {
	return &predictionRepository{pool: pool}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *domain.Prediction) error {
	const query = `
        INSERT INTO predictions (user_id, disease, symptoms, result)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		prediction.UserID,
		prediction.Disease,
		prediction.Symptoms,
		prediction.Result,
	).Scan(&prediction.ID, &prediction.CreatedAt)
}

func (r *predictionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Prediction, error) {
	const query = `
        SELECT id, user_id, disease, symptoms, result, created_at
        FROM predictions WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var predictions []domain.Prediction
	for rows.Next() {
		var prediction domain.Prediction
		if err := rows.Scan(
			&prediction.ID,
			&prediction.UserID,
			&prediction.Disease,
			&prediction.Symptoms,
			&prediction.Result,
			&prediction.CreatedAt,
		); err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}
	return predictions, rows.Err()
}

func (r *predictionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM predictions WHERE user_id=$1`, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *predictionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&count)
	return count, err
}
