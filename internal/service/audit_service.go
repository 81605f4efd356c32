package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/healthsync-service/internal/events"
)

// AuditService records an audit trail line for security-relevant domain
// events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handle)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handle)
	a.dispatcher.Subscribe(events.EventSessionRevoked, a.handle)
	a.dispatcher.Subscribe(events.EventOTPRequested, a.handle)
	a.dispatcher.Subscribe(events.EventEmailVerified, a.handle)
	a.dispatcher.Subscribe(events.EventHealthCheckSubmitted, a.handle)
	a.dispatcher.Subscribe(events.EventUserPromoted, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("user_id", event.UserID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	return nil
}
