package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/events"
	"github.com/spec-kit/healthsync-service/internal/repository"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// AdminService provides the administrative surface. Role enforcement happens
// at the route guard; these methods assume an admin caller.
type AdminService struct {
	users       repository.UserRepository
	predictions repository.PredictionRepository
	dispatcher  events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, predictions repository.PredictionRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{users: users, predictions: predictions, dispatcher: dispatcher}
}

// ListUsers returns every account.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable("credential store", err)
	}
	return users, nil
}

// GetUser returns one account.
func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewUnavailable("credential store", err)
	}
	return user, nil
}

// DeleteUserHistory purges a user's prediction history.
func (s *AdminService) DeleteUserHistory(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.predictions.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, apperrors.NewUnavailable("prediction store", err)
	}
	return deleted, nil
}

// PromoteUser raises an account's role to admin. This is the only operation
// that mutates role.
func (s *AdminService) PromoteUser(ctx context.Context, requesterID, userID string) error {
	if err := s.users.SetRole(ctx, userID, domain.RoleAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.NewUnavailable("credential store", err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserPromoted,
			UserID:    userID,
			Timestamp: time.Now(),
			Payload:   events.UserPromotedPayload{PromotedBy: requesterID},
		})
	}
	return nil
}

// PlatformStats summarizes platform activity.
type PlatformStats struct {
	TotalUsers       int64
	TotalPredictions int64
	RecentSignups    int64
}

// Stats gathers counts for the admin dashboard.
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable("credential store", err)
	}
	totalPredictions, err := s.predictions.Count(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable("prediction store", err)
	}
	recentSignups, err := s.users.CountCreatedSince(ctx, 7)
	if err != nil {
		return nil, apperrors.NewUnavailable("credential store", err)
	}

	return &PlatformStats{
		TotalUsers:       totalUsers,
		TotalPredictions: totalPredictions,
		RecentSignups:    recentSignups,
	}, nil
}
