package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	token, meta, err := tm.Generate("user-123", domain.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, meta.JTI)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, meta.JTI, claims.ID)
	require.Equal(t, domain.RoleUser, claims.Role)
}

func TestGenerate_UniqueJTI(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)

	_, first, err := tm.Generate("u1", domain.RoleUser)
	require.NoError(t, err)
	_, second, err := tm.Generate("u1", domain.RoleUser)
	require.NoError(t, err)
	require.NotEqual(t, first.JTI, second.JTI)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	tm.ttl = -1 * time.Second

	token, _, err := tm.Generate("u1", domain.RoleUser)
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenManager("right-secret", time.Hour).Generate("u2", domain.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", time.Hour).Parse(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).Parse("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
