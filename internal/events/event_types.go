package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventUserLoggedIn         EventType = "user_logged_in"
	EventSessionRevoked       EventType = "session_revoked"
	EventOTPRequested         EventType = "otp_requested"
	EventEmailVerified        EventType = "email_verified"
	EventHealthCheckSubmitted EventType = "health_check_submitted"
	EventPredictionRecorded   EventType = "prediction_recorded"
	EventUserPromoted         EventType = "user_promoted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// SessionRevokedPayload payload.
type SessionRevokedPayload struct {
	JTI string `json:"jti"`
}

// OTPRequestedPayload payload. The code itself is never published.
type OTPRequestedPayload struct {
	Email string `json:"email"`
}

// HealthCheckSubmittedPayload payload.
type HealthCheckSubmittedPayload struct {
	RecordID string `json:"record_id"`
}

// PredictionRecordedPayload payload.
type PredictionRecordedPayload struct {
	PredictionID string `json:"prediction_id"`
	Disease      string `json:"disease"`
}

// UserPromotedPayload payload.
type UserPromotedPayload struct {
	PromotedBy string `json:"promoted_by"`
}
