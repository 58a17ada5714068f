package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)
	require.True(t, strings.HasPrefix(hash, "$argon2"))

	ok, err := VerifyPassword("secret", hash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret")
	require.NoError(t, err)

	ok, err := VerifyPassword("not-the-secret", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret")
	require.NoError(t, err)

	second, err := HashPassword("secret")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("secret", "not-an-encoded-hash")
	require.Error(t, err)
}
