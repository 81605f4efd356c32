package dto

import "time"

// CreateConversationRequest payload.
type CreateConversationRequest struct {
	Title string `json:"title"`
}

// SendChatMessageRequest payload.
type SendChatMessageRequest struct {
	Content string `json:"content"`
}

// ConversationSummary response.
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessageResponse represents one turn in a thread.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationDetailResponse provides a thread with its messages.
type ConversationDetailResponse struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	CreatedAt time.Time             `json:"created_at"`
	Messages  []ChatMessageResponse `json:"messages"`
}
