package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/config"
	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/events"
	"github.com/spec-kit/healthsync-service/internal/repository"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

const uniqueViolation = "23505"

// AuthService coordinates registration, login, and session revocation.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.RevocationRepository
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
	bcryptCost  int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RevocationRepo repository.RevocationRepository
	Dispatcher     events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.RevocationRepo,
		tokenMgr:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		dispatcher:  deps.Dispatcher,
		bcryptCost:  cfg.BcryptCost,
	}
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Email           string
	Password        string
	Name            string
	Age             int
	Gender          string
	MedicalHistory  string
	ProfileImageURL *string
}

// NormalizeEmail lower-cases and trims an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with role "user".
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := NormalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("invalid email address", map[string]any{"email": input.Email})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail(email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewUnavailable("credential store", err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:           email,
		PasswordHash:    hash,
		Name:            input.Name,
		Age:             input.Age,
		Gender:          input.Gender,
		MedicalHistory:  input.MedicalHistory,
		ProfileImageURL: input.ProfileImageURL,
		Role:            domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations can pass the lookup above; the unique
		// index is the authority.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.NewDuplicateEmail(email)
		}
		return nil, apperrors.NewUnavailable("credential store", err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: email})
	return user, nil
}

// Login authenticates a credential and issues a session token. Unknown email
// and wrong password both yield the same InvalidCredentials failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, *domain.SessionToken, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil, apperrors.NewInvalidCredentials()
		}
		return nil, "", nil, apperrors.NewUnavailable("credential store", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", nil, apperrors.NewInvalidCredentials()
	}

	token, meta, err := s.tokenMgr.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", nil, err
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, nil)
	return user, token, meta, nil
}

// ProfileUpdate describes a partial profile edit. Nil fields keep the stored
// value.
type ProfileUpdate struct {
	Name            *string
	Age             *int
	Gender          *string
	MedicalHistory  *string
	ProfileImageURL *string
}

// UpdateProfile applies a partial edit to the caller's own record. Email,
// role, and credentials are not editable here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewUnavailable("credential store", err)
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}
	if update.MedicalHistory != nil {
		user.MedicalHistory = *update.MedicalHistory
	}
	if update.ProfileImageURL != nil {
		user.ProfileImageURL = update.ProfileImageURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewUnavailable("credential store", err)
	}
	return user, nil
}

// Logout revokes the presented session token. The revocation write is durable
// before this returns, so a subsequent request with the same token is
// reliably rejected. Revoking an already-revoked jti succeeds.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revocations.Revoke(ctx, claims.ID, claims.Subject, ttl); err != nil {
		return apperrors.NewUnavailable("revocation store", err)
	}

	s.publish(ctx, events.EventSessionRevoked, claims.Subject, events.SessionRevokedPayload{JTI: claims.ID})
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
