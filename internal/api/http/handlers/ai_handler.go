package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthsync-service/internal/api/dto"
	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/service"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// AIHandler exposes AI chat endpoints.
type AIHandler struct {
	ai *service.AIService
}

// NewAIHandler constructs handler.
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{ai: aiService}
}

// CreateConversation POST /api/ai/conversations.
func (h *AIHandler) CreateConversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateConversationRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	conversation, err := h.ai.CreateConversation(c.UserContext(), principal.User.ID, req.Title)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":         "conversation created",
		"conversation_id": conversation.ID,
		"title":           conversation.Title,
		"created_at":      conversation.CreatedAt,
	})
}

// ListConversations GET /api/ai/conversations.
func (h *AIHandler) ListConversations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	conversations, err := h.ai.ListConversations(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		items = append(items, dto.ConversationSummary{
			ID:        conversation.ID,
			Title:     conversation.Title,
			CreatedAt: conversation.CreatedAt,
			UpdatedAt: conversation.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"conversations": items})
}

// GetConversation GET /api/ai/conversations/:id.
func (h *AIHandler) GetConversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	conversation, messages, err := h.ai.GetConversation(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}

	detail := dto.ConversationDetailResponse{
		ID:        conversation.ID,
		Title:     conversation.Title,
		CreatedAt: conversation.CreatedAt,
		Messages:  make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		detail.Messages = append(detail.Messages, dto.ChatMessageResponse{
			ID:        message.ID,
			Role:      string(message.Role),
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"conversation": detail})
}

// DeleteConversation DELETE /api/ai/conversations/:id.
func (h *AIHandler) DeleteConversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.ai.DeleteConversation(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "conversation deleted"})
}

// SendMessage POST /api/ai/conversations/:id/messages.
func (h *AIHandler) SendMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SendChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	reply, err := h.ai.SendMessage(c.UserContext(), principal.User.ID, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"reply": dto.ChatMessageResponse{
			ID:        reply.ID,
			Role:      string(reply.Role),
			Content:   reply.Content,
			CreatedAt: reply.CreatedAt,
		},
	})
}
