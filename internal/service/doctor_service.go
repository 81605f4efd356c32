package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/repository"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// DoctorService manages practitioner listings and consultations.
type DoctorService struct {
	doctors       repository.DoctorRepository
	consultations repository.ConsultationRepository
}

// NewDoctorService builds the service.
func NewDoctorService(doctors repository.DoctorRepository, consultations repository.ConsultationRepository) *DoctorService {
	return &DoctorService{doctors: doctors, consultations: consultations}
}

// ListDoctors returns profiles, optionally filtered by specialty.
func (s *DoctorService) ListDoctors(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	doctors, err := s.doctors.List(ctx, specialty)
	if err != nil {
		return nil, apperrors.NewUnavailable("doctor store", err)
	}
	return doctors, nil
}

// GetDoctor returns one profile.
func (s *DoctorService) GetDoctor(ctx context.Context, id string) (*domain.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", nil)
		}
		return nil, apperrors.NewUnavailable("doctor store", err)
	}
	return doctor, nil
}

// StartConsultation opens a chat thread with a doctor.
func (s *DoctorService) StartConsultation(ctx context.Context, userID, doctorID string) (*domain.Consultation, error) {
	if _, err := s.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	consultation := &domain.Consultation{UserID: userID, DoctorID: doctorID}
	if err := s.consultations.Create(ctx, consultation); err != nil {
		return nil, apperrors.NewUnavailable("consultation store", err)
	}
	return consultation, nil
}

// ListConsultations returns the user's consultation threads.
func (s *DoctorService) ListConsultations(ctx context.Context, userID string) ([]domain.Consultation, error) {
	consultations, err := s.consultations.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnavailable("consultation store", err)
	}
	return consultations, nil
}

// GetConsultation returns one owned thread with its messages.
func (s *DoctorService) GetConsultation(ctx context.Context, userID, consultationID string) (*domain.Consultation, []domain.ConsultationMessage, error) {
	consultation, err := s.ownedConsultation(ctx, userID, consultationID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.consultations.ListMessages(ctx, consultationID)
	if err != nil {
		return nil, nil, apperrors.NewUnavailable("consultation store", err)
	}
	return consultation, messages, nil
}

// AddConsultationMessage appends a patient message to an owned thread.
func (s *DoctorService) AddConsultationMessage(ctx context.Context, userID, consultationID, content string) (*domain.ConsultationMessage, error) {
	if content == "" {
		return nil, apperrors.NewValidationError("message content required", nil)
	}
	if _, err := s.ownedConsultation(ctx, userID, consultationID); err != nil {
		return nil, err
	}

	message := &domain.ConsultationMessage{
		ConsultationID: consultationID,
		Sender:         "patient",
		Content:        content,
	}
	if err := s.consultations.AddMessage(ctx, message); err != nil {
		return nil, apperrors.NewUnavailable("consultation store", err)
	}
	return message, nil
}

// EndConsultation removes an owned thread and its transcript.
func (s *DoctorService) EndConsultation(ctx context.Context, userID, consultationID string) error {
	if _, err := s.ownedConsultation(ctx, userID, consultationID); err != nil {
		return err
	}
	if err := s.consultations.Delete(ctx, consultationID); err != nil {
		return apperrors.NewUnavailable("consultation store", err)
	}
	return nil
}

func (s *DoctorService) ownedConsultation(ctx context.Context, userID, consultationID string) (*domain.Consultation, error) {
	consultation, err := s.consultations.GetByID(ctx, consultationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("consultation", nil)
		}
		return nil, apperrors.NewUnavailable("consultation store", err)
	}
	if consultation.UserID != userID {
		return nil, apperrors.NewNotFound("consultation", nil)
	}
	return consultation, nil
}
