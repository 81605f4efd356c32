package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/healthsync-service/internal/config"
	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/events"
	"github.com/spec-kit/healthsync-service/internal/mailer"
	"github.com/spec-kit/healthsync-service/internal/repository"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

const otpEmailSubject = "HealthSync Email Verification"

// OTPService runs the generate -> email -> verify -> consume flow for email
// confirmation. Codes are single-use and valid for a fixed window; a fresh
// request supersedes any prior unconsumed code for the same address.
type OTPService struct {
	otps            repository.OTPRepository
	users           repository.UserRepository
	mail            mailer.Mailer
	dispatcher      events.Dispatcher
	validity        time.Duration
	dispatchTimeout time.Duration

	now func() time.Time
}

// OTPDependencies encapsulates requirements for the OTP service.
type OTPDependencies struct {
	OTPRepo    repository.OTPRepository
	UserRepo   repository.UserRepository
	Mailer     mailer.Mailer
	Dispatcher events.Dispatcher
}

// NewOTPService builds the service.
func NewOTPService(cfg config.OTPConfig, deps OTPDependencies) *OTPService {
	return &OTPService{
		otps:            deps.OTPRepo,
		users:           deps.UserRepo,
		mail:            deps.Mailer,
		dispatcher:      deps.Dispatcher,
		validity:        cfg.Validity(),
		dispatchTimeout: cfg.DispatchTimeout(),
		now:             time.Now,
	}
}

// GenerateCode produces a uniformly random six-digit code. Leading zeros are
// allowed, so the code is a string, never an integer.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestOTP issues a fresh code for the email and dispatches it. Calling
// again simply issues a new code (last writer wins). Storage failures and
// dispatch failures are surfaced distinctly.
func (s *OTPService) RequestOTP(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	record := &domain.OTPRecord{Email: email, Code: code, IssuedAt: s.now()}
	if err := s.otps.Upsert(ctx, record); err != nil {
		return apperrors.NewUnavailable("otp store", err)
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	body := fmt.Sprintf("Your OTP is: %s", code)
	if err := s.mail.Send(dispatchCtx, email, otpEmailSubject, body); err != nil {
		return apperrors.NewOtpDispatchFailed(err)
	}

	s.publish(ctx, events.EventOTPRequested, events.OTPRequestedPayload{Email: email})
	return nil
}

// VerifyOTP checks the submitted code. On success the record is deleted so
// the code can never be used twice. An expired record is also deleted at
// detection time rather than lingering until superseded.
func (s *OTPService) VerifyOTP(ctx context.Context, email, submitted string) error {
	email = NormalizeEmail(email)

	record, err := s.otps.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewOtpNotFound()
		}
		return apperrors.NewUnavailable("otp store", err)
	}

	// Exact string equality; no whitespace normalization.
	if record.Code != submitted {
		return apperrors.NewOtpMismatch()
	}

	if s.now().Sub(record.IssuedAt) > s.validity {
		if err := s.otps.Delete(ctx, email); err != nil {
			return apperrors.NewUnavailable("otp store", err)
		}
		return apperrors.NewOtpExpired()
	}

	if err := s.otps.Delete(ctx, email); err != nil {
		return apperrors.NewUnavailable("otp store", err)
	}
	if err := s.users.SetEmailVerified(ctx, email); err != nil {
		return apperrors.NewUnavailable("credential store", err)
	}

	s.publish(ctx, events.EventEmailVerified, events.OTPRequestedPayload{Email: email})
	return nil
}

func (s *OTPService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
