package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"
)

// testKeeperURI uses the in-memory localsecrets driver so tests run without
// a real KMS.
const testKeeperURI = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

func newTestKeeper(t *testing.T) *secrets.Keeper {
	t.Helper()

	keeper, err := NewKMSService().OpenKeeper(context.Background(), testKeeperURI)
	require.NoError(t, err)
	t.Cleanup(func() { _ = keeper.Close() })

	return keeper
}

func TestKMSKeyWrapper_RoundTrip(t *testing.T) {
	wrapper := NewKMSKeyWrapper(newTestKeeper(t))
	ctx := context.Background()

	ssoKey := []byte("0123456789abcdef0123456789abcdef")

	blob, err := wrapper.Wrap(ctx, ssoKey)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), string(ssoKey))

	recovered, err := wrapper.Unwrap(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, ssoKey, recovered)
}

func TestKMSKeyWrapper_WrapIsNotDeterministic(t *testing.T) {
	wrapper := NewKMSKeyWrapper(newTestKeeper(t))
	ctx := context.Background()

	ssoKey := []byte("0123456789abcdef")

	blob1, err := wrapper.Wrap(ctx, ssoKey)
	require.NoError(t, err)
	blob2, err := wrapper.Wrap(ctx, ssoKey)
	require.NoError(t, err)

	// Fresh data key and nonce per call
	assert.NotEqual(t, blob1, blob2)
}

func TestKMSKeyWrapper_UnwrapRejectsTamperedBlob(t *testing.T) {
	wrapper := NewKMSKeyWrapper(newTestKeeper(t))
	ctx := context.Background()

	blob, err := wrapper.Wrap(ctx, []byte("0123456789abcdef"))
	require.NoError(t, err)

	// Flip a bit in the trailing ciphertext
	tampered := make([]byte, len(blob))
	copy(tampered, blob)
	tampered[len(tampered)-1] ^= 0x01

	_, err = wrapper.Unwrap(ctx, tampered)
	assert.Error(t, err)
}

func TestKMSKeyWrapper_UnwrapRejectsTruncatedBlob(t *testing.T) {
	wrapper := NewKMSKeyWrapper(newTestKeeper(t))
	ctx := context.Background()

	blob, err := wrapper.Wrap(ctx, []byte("0123456789abcdef"))
	require.NoError(t, err)

	for _, n := range []int{0, 1, 3, 7} {
		_, err := wrapper.Unwrap(ctx, blob[:n])
		assert.Error(t, err, "blob truncated to %d bytes", n)
	}
}

func TestKMSKeyWrapper_UnwrapRejectsWrongMasterKey(t *testing.T) {
	ctx := context.Background()

	wrapper := NewKMSKeyWrapper(newTestKeeper(t))
	blob, err := wrapper.Wrap(ctx, []byte("0123456789abcdef"))
	require.NoError(t, err)

	otherKeeper, err := NewKMSService().OpenKeeper(
		ctx,
		"base64key://AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = otherKeeper.Close() })

	_, err = NewKMSKeyWrapper(otherKeeper).Unwrap(ctx, blob)
	assert.Error(t, err)
}

func TestKMSService_OpenKeeper_InvalidURI(t *testing.T) {
	_, err := NewKMSService().OpenKeeper(context.Background(), "bogus://nope")
	assert.Error(t, err)
}
