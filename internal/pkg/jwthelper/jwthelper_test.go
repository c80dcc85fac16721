package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("round trip", func(t *testing.T) {
		claims, err := ParseToken(key, token, "test-agent")

		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := ParseToken([]byte("other-key"), token, "test-agent")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("user agent mismatch", func(t *testing.T) {
		_, err := ParseToken(key, token, "another-agent")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken(key, "not.a.token", "test-agent")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
