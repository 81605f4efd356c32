package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/events"
	"github.com/spec-kit/healthsync-service/internal/repository"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// HealthService manages health-check submissions and prediction history.
type HealthService struct {
	records     repository.HealthRecordRepository
	predictions repository.PredictionRepository
	dispatcher  events.Dispatcher
}

// NewHealthService builds the service.
func NewHealthService(records repository.HealthRecordRepository, predictions repository.PredictionRepository, dispatcher events.Dispatcher) *HealthService {
	return &HealthService{records: records, predictions: predictions, dispatcher: dispatcher}
}

// HealthCheckInput describes a daily health-check payload.
type HealthCheckInput struct {
	TotalCholesterol  *float64
	HDLCholesterol    *float64
	LDLCholesterol    *float64
	BloodPressure     *string
	Weight            *float64
	Height            *float64
	DiabetesStatus    *string
	InjuryDescription *string
	Notes             *string
}

func (in HealthCheckInput) empty() bool {
	return in.TotalCholesterol == nil && in.HDLCholesterol == nil && in.LDLCholesterol == nil &&
		in.BloodPressure == nil && in.Weight == nil && in.Height == nil &&
		in.DiabetesStatus == nil && in.InjuryDescription == nil && in.Notes == nil
}

// SubmitHealthCheck stores a vitals submission for the user.
func (s *HealthService) SubmitHealthCheck(ctx context.Context, userID string, input HealthCheckInput) (*domain.HealthRecord, error) {
	if input.empty() {
		return nil, apperrors.NewValidationError("no data provided", nil)
	}

	record := &domain.HealthRecord{
		UserID:            userID,
		TotalCholesterol:  input.TotalCholesterol,
		HDLCholesterol:    input.HDLCholesterol,
		LDLCholesterol:    input.LDLCholesterol,
		BloodPressure:     input.BloodPressure,
		Weight:            input.Weight,
		Height:            input.Height,
		DiabetesStatus:    input.DiabetesStatus,
		InjuryDescription: input.InjuryDescription,
		Notes:             input.Notes,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.NewUnavailable("health record store", err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventHealthCheckSubmitted,
			UserID:    userID,
			Timestamp: time.Now(),
			Payload:   events.HealthCheckSubmittedPayload{RecordID: record.ID},
		})
	}
	return record, nil
}

// ListHealthChecks returns the user's submissions, newest first.
func (s *HealthService) ListHealthChecks(ctx context.Context, userID string) ([]domain.HealthRecord, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnavailable("health record store", err)
	}
	return records, nil
}

// RecordPrediction stores a finished prediction in the user's history.
// Inference is not run here; the caller supplies the outcome.
func (s *HealthService) RecordPrediction(ctx context.Context, userID, disease string, symptoms []string, result string) (*domain.Prediction, error) {
	if disease == "" {
		return nil, apperrors.NewValidationError("disease required", nil)
	}
	if len(symptoms) == 0 {
		return nil, apperrors.NewValidationError("symptoms required", nil)
	}
	if result == "" {
		return nil, apperrors.NewValidationError("result required", nil)
	}

	prediction := &domain.Prediction{
		UserID:   userID,
		Disease:  disease,
		Symptoms: symptoms,
		Result:   result,
	}
	if err := s.predictions.Create(ctx, prediction); err != nil {
		return nil, apperrors.NewUnavailable("prediction store", err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPredictionRecorded,
			UserID:    userID,
			Timestamp: time.Now(),
			Payload:   events.PredictionRecordedPayload{PredictionID: prediction.ID, Disease: disease},
		})
	}
	return prediction, nil
}

// ListPredictions returns the user's prediction history, newest first.
func (s *HealthService) ListPredictions(ctx context.Context, userID string) ([]domain.Prediction, error) {
	predictions, err := s.predictions.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnavailable("prediction store", err)
	}
	return predictions, nil
}
