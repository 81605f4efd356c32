package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/healthsync-service/internal/ai"
	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/repository"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// AIService manages AI chat threads. The generative model call goes through
// the ai.Client collaborator.
type AIService struct {
	conversations repository.ConversationRepository
	client        ai.Client
}

// NewAIService builds the service.
func NewAIService(conversations repository.ConversationRepository, client ai.Client) *AIService {
	return &AIService{conversations: conversations, client: client}
}

// CreateConversation starts a new chat thread for the user.
func (s *AIService) CreateConversation(ctx context.Context, userID, title string) (*domain.Conversation, error) {
	if title == "" {
		title = fmt.Sprintf("New Chat - %s", time.Now().Format("2006-01-02 15:04"))
	}
	conversation := &domain.Conversation{UserID: userID, Title: title}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, apperrors.NewUnavailable("conversation store", err)
	}
	return conversation, nil
}

// ListConversations returns the user's threads, most recently active first.
func (s *AIService) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	conversations, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnavailable("conversation store", err)
	}
	return conversations, nil
}

// GetConversation returns one thread with its messages. Threads belonging to
// another user surface as not found rather than forbidden.
func (s *AIService) GetConversation(ctx context.Context, userID, conversationID string) (*domain.Conversation, []domain.ChatMessage, error) {
	conversation, err := s.ownedConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, nil, apperrors.NewUnavailable("conversation store", err)
	}
	return conversation, messages, nil
}

// SendMessage stores the user's message, asks the model for a reply, stores
// it, and returns it.
func (s *AIService) SendMessage(ctx context.Context, userID, conversationID, content string) (*domain.ChatMessage, error) {
	if content == "" {
		return nil, apperrors.NewValidationError("message content required", nil)
	}
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	history, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, apperrors.NewUnavailable("conversation store", err)
	}

	userMsg := &domain.ChatMessage{
		ConversationID: conversationID,
		Role:           domain.MessageRoleUser,
		Content:        content,
	}
	if err := s.conversations.AddMessage(ctx, userMsg); err != nil {
		return nil, apperrors.NewUnavailable("conversation store", err)
	}

	reply, err := s.client.Complete(ctx, history, content)
	if err != nil {
		return nil, apperrors.NewDomainError("AI_UNAVAILABLE", "assistant unavailable", http.StatusBadGateway, nil)
	}

	assistantMsg := &domain.ChatMessage{
		ConversationID: conversationID,
		Role:           domain.MessageRoleAssistant,
		Content:        reply,
	}
	if err := s.conversations.AddMessage(ctx, assistantMsg); err != nil {
		return nil, apperrors.NewUnavailable("conversation store", err)
	}
	return assistantMsg, nil
}

// DeleteConversation removes a thread and its messages. The same ownership
// rule as GetConversation applies.
func (s *AIService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := s.conversations.Delete(ctx, conversationID); err != nil {
		return apperrors.NewUnavailable("conversation store", err)
	}
	return nil
}

func (s *AIService) ownedConversation(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("conversation", nil)
		}
		return nil, apperrors.NewUnavailable("conversation store", err)
	}
	if conversation.UserID != userID {
		return nil, apperrors.NewNotFound("conversation", nil)
	}
	return conversation, nil
}
