package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/healthsync-service/internal/config"
	"github.com/spec-kit/healthsync-service/internal/domain"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

func newTestAuthService(users *memUserRepo, revocations *memRevocations) *AuthService {
	cfg := config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenTTLHours: 24,
		BcryptCost:          bcrypt.MinCost,
	}
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:       users,
		RevocationRepo: revocations,
	})
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Email:          email,
		Password:       "pw123",
		Name:           "Test User",
		Age:            30,
		Gender:         "female",
		MedicalHistory: "none",
	}
}

func TestRegister_Success(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemRevocations())

	user, err := svc.Register(context.Background(), registerInput("U@X.com"))
	require.NoError(t, err)
	require.Equal(t, "u@x.com", user.Email, "email is case-normalized")
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEqual(t, "pw123", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemRevocations())

	_, err := svc.Register(context.Background(), registerInput("u@x.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput("U@X.COM"))
	require.Error(t, err)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "DUPLICATE_EMAIL", de.Code)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo(), newMemRevocations())

	_, err := svc.Register(context.Background(), registerInput("not-an-email"))
	require.Error(t, err)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemRevocations())

	registered, err := svc.Register(context.Background(), registerInput("u@x.com"))
	require.NoError(t, err)

	user, token, meta, err := svc.Login(context.Background(), "u@x.com", "pw123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), meta.ExpiresAt, time.Minute)

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, meta.JTI, claims.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemRevocations())

	_, err := svc.Register(context.Background(), registerInput("u@x.com"))
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "u@x.com", "wrong"},
		{"unknown email", "nobody@x.com", "pw123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tc.email, tc.password)
			require.Error(t, err)
			var de *apperrors.DomainError
			require.ErrorAs(t, err, &de)
			// Same code either way: the response must not reveal whether the
			// email exists.
			require.Equal(t, "INVALID_CREDENTIALS", de.Code)
		})
	}
}

func TestUpdateProfile_PartialEdit(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users, newMemRevocations())

	registered, err := svc.Register(context.Background(), registerInput("u@x.com"))
	require.NoError(t, err)

	newName := "Renamed"
	updated, err := svc.UpdateProfile(context.Background(), registered.ID, ProfileUpdate{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, registered.Age, updated.Age, "unset fields keep their value")
	require.Equal(t, registered.Email, updated.Email)

	_, err = svc.UpdateProfile(context.Background(), "no-such-id", ProfileUpdate{Name: &newName})
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "NOT_FOUND", de.Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	users := newMemUserRepo()
	revocations := newMemRevocations()
	svc := newTestAuthService(users, revocations)

	_, err := svc.Register(context.Background(), registerInput("u@x.com"))
	require.NoError(t, err)

	_, token, meta, err := svc.Login(context.Background(), "u@x.com", "pw123")
	require.NoError(t, err)

	revoked, err := revocations.IsRevoked(context.Background(), meta.JTI)
	require.NoError(t, err)
	require.False(t, revoked, "fresh token must not be revoked")

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), claims))

	revoked, err = revocations.IsRevoked(context.Background(), meta.JTI)
	require.NoError(t, err)
	require.True(t, revoked, "logged-out token must be revoked")

	// Logout is idempotent.
	require.NoError(t, svc.Logout(context.Background(), claims))
}
