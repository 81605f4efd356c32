package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123", bcrypt.MinCost)
	require.NoError(t, err)

	require.True(t, VerifyPassword(hash, "pw123"))
	require.False(t, VerifyPassword(hash, "pw124"))
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	require.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
