package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretService_GenerateSecret(t *testing.T) {
	svc := NewSecretService()

	plainSecret, hashedSecret, err := svc.GenerateSecret()
	require.NoError(t, err)

	assert.NotEmpty(t, plainSecret)
	assert.NotEmpty(t, hashedSecret)
	assert.NotEqual(t, plainSecret, hashedSecret)

	// Generated secrets must be unique
	otherPlain, otherHash, err := svc.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, plainSecret, otherPlain)
	assert.NotEqual(t, hashedSecret, otherHash)
}

func TestSecretService_HashSecret(t *testing.T) {
	svc := NewSecretService()

	hash1, err := svc.HashSecret("my-secret")
	require.NoError(t, err)

	hash2, err := svc.HashSecret("my-secret")
	require.NoError(t, err)

	// Argon2id uses a random salt, so hashes of the same input differ
	assert.NotEqual(t, hash1, hash2)
}

func TestSecretService_CompareSecret(t *testing.T) {
	svc := NewSecretService()

	plainSecret, hashedSecret, err := svc.GenerateSecret()
	require.NoError(t, err)

	t.Run("matching secret", func(t *testing.T) {
		assert.True(t, svc.CompareSecret(plainSecret, hashedSecret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, svc.CompareSecret("wrong-secret", hashedSecret))
	})

	t.Run("malformed hash", func(t *testing.T) {
		assert.False(t, svc.CompareSecret(plainSecret, "not-a-hash"))
	})
}
