package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

// ConsultationRepository persists doctor-patient chat threads.
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *domain.Consultation) error
	GetByID(ctx context.Context, id string) (*domain.Consultation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Consultation, error)
	AddMessage(ctx context.Context, message *domain.ConsultationMessage) error
	ListMessages(ctx context.Context, consultationID string) ([]domain.ConsultationMessage, error)
	Delete(ctx context.Context, id string) error
}

type consultationRepository struct {
	pool *pgxpool.Pool
}

// NewConsultationRepository returns a Postgres-backed implementation.
func NewConsultationRepository(pool *pgxpool.Pool) ConsultationRepository {
	return &consultationRepository{pool: pool}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *domain.Consultation) error {
	const query = `
        INSERT INTO consultations (user_id, doctor_id)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		consultation.UserID,
		consultation.DoctorID,
	).Scan(&consultation.ID, &consultation.CreatedAt, &consultation.UpdatedAt)
}

func (r *consultationRepository) GetByID(ctx context.Context, id string) (*domain.Consultation, error) {
	const query = `
        SELECT id, user_id, doctor_id, created_at, updated_at
        FROM consultations WHERE id=$1`

	var consultation domain.Consultation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&consultation.ID,
		&consultation.UserID,
		&consultation.DoctorID,
		&consultation.CreatedAt,
		&consultation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Consultation, error) {
	const query = `
        SELECT id, user_id, doctor_id, created_at, updated_at
        FROM consultations WHERE user_id=$1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consultations []domain.Consultation
	for rows.Next() {
		var consultation domain.Consultation
		if err := rows.Scan(
			&consultation.ID,
			&consultation.UserID,
			&consultation.DoctorID,
			&consultation.CreatedAt,
			&consultation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		consultations = append(consultations, consultation)
	}
	return consultations, rows.Err()
}

func (r *consultationRepository) AddMessage(ctx context.Context, message *domain.ConsultationMessage) error {
	const query = `
        INSERT INTO consultation_messages (consultation_id, sender, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	if err := r.pool.QueryRow(ctx, query,
		message.ConsultationID,
		message.Sender,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE consultations SET updated_at=NOW() WHERE id=$1`, message.ConsultationID)
	return err
}

// Delete removes the thread; its messages go with it via the cascade.
func (r *consultationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM consultations WHERE id=$1`, id)
	return err
}

func (r *consultationRepository) ListMessages(ctx context.Context, consultationID string) ([]domain.ConsultationMessage, error) {
	const query = `
        SELECT id, consultation_id, sender, content, created_at
        FROM consultation_messages WHERE consultation_id=$1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, consultationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ConsultationMessage
	for rows.Next() {
		var message domain.ConsultationMessage
		if err := rows.Scan(
			&message.ID,
			&message.ConsultationID,
			&message.Sender,
			&message.Content,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
