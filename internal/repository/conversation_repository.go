package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

// ConversationRepository persists AI chat threads and their messages.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Conversation, error)
	AddMessage(ctx context.Context, message *domain.ChatMessage) error
	ListMessages(ctx context.Context, conversationID string) ([]domain.ChatMessage, error)
	Delete(ctx context.Context, id string) error
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository returns a Postgres-backed implementation.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	const query = `
        INSERT INTO conversations (user_id, title)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		conversation.UserID,
		conversation.Title,
	).Scan(&conversation.ID, &conversation.CreatedAt, &conversation.UpdatedAt)
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	const query = `
        SELECT id, user_id, title, created_at, updated_at
        FROM conversations WHERE id=$1`

	var conversation domain.Conversation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&conversation.ID,
		&conversation.UserID,
		&conversation.Title,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	const query = `
        SELECT id, user_id, title, created_at, updated_at
        FROM conversations WHERE user_id=$1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var conversation domain.Conversation
		if err := rows.Scan(
			&conversation.ID,
			&conversation.UserID,
			&conversation.Title,
			&conversation.CreatedAt,
			&conversation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, conversation)
	}
	return conversations, rows.Err()
}

func (r *conversationRepository) AddMessage(ctx context.Context, message *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (conversation_id, role, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	if err := r.pool.QueryRow(ctx, query,
		message.ConversationID,
		message.Role,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE conversations SET updated_at=NOW() WHERE id=$1`, message.ConversationID)
	return err
}

// Delete removes the thread; its messages go with it via the cascade.
func (r *conversationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM conversations WHERE id=$1`, id)
	return err
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, conversation_id, role, content, created_at
        FROM chat_messages WHERE conversation_id=$1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var message domain.ChatMessage
		if err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.Role,
			&message.Content,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
