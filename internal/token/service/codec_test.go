package service

import (
	"crypto/cipher"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

func newTestCodec() TokenCodec {
	canonicalizer := NewParamCanonicalizer()
	return NewTokenCodec(NewKeyDeriver(), canonicalizer, NewSigner(canonicalizer))
}

// encryptRaw builds a token around an arbitrary plaintext with a fixed IV,
// bypassing signing. Used to exercise decode failure paths that Encode can
// never produce.
func encryptRaw(t *testing.T, secret []byte, plaintext string) string {
	t.Helper()

	block, err := newCipherBlock(NewKeyDeriver(), secret)
	require.NoError(t, err)

	iv := []byte("abcdefghijklmnop")
	padded := pkcs7Pad([]byte(plaintext), tokenDomain.BlockSize)
	out := make([]byte, len(iv)+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(iv):], padded)

	return base64.StdEncoding.EncodeToString(out)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec()
	secret := []byte("shared-secret")

	t.Run("concrete scenario", func(t *testing.T) {
		attrs := tokenDomain.AttributeMap{
			"uid":   "42",
			"email": "a@example.com",
		}

		token, err := codec.Encode(attrs, secret)
		require.NoError(t, err)

		// Decoded wire bytes are a 16-byte IV plus a positive multiple of
		// the cipher block size.
		raw, err := base64.StdEncoding.DecodeString(token)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(raw), tokenDomain.IVSize+tokenDomain.BlockSize)
		assert.Zero(t, (len(raw)-tokenDomain.IVSize)%tokenDomain.BlockSize)

		decoded, err := codec.Decode(token, secret)
		require.NoError(t, err)
		assert.Equal(t, attrs, decoded)
	})

	t.Run("attributes with reserved characters", func(t *testing.T) {
		attrs := tokenDomain.AttributeMap{
			"display.name": "John Doe & Sons = 100%",
			"homepage":     "https://example.com/?q=a&r=b",
			"note":         "café ☕",
		}

		token, err := codec.Encode(attrs, secret)
		require.NoError(t, err)

		decoded, err := codec.Decode(token, secret)
		require.NoError(t, err)
		assert.Equal(t, attrs, decoded)
	})

	t.Run("signature field never leaks into the result", func(t *testing.T) {
		attrs := tokenDomain.AttributeMap{"uid": "42"}

		token, err := codec.Encode(attrs, secret)
		require.NoError(t, err)

		decoded, err := codec.Decode(token, secret)
		require.NoError(t, err)
		_, hasSig := decoded[tokenDomain.SignatureField]
		assert.False(t, hasSig)
	})

	t.Run("caller map is not mutated", func(t *testing.T) {
		attrs := tokenDomain.AttributeMap{"uid": "42"}

		_, err := codec.Encode(attrs, secret)
		require.NoError(t, err)

		assert.Equal(t, tokenDomain.AttributeMap{"uid": "42"}, attrs)
	})
}

func TestTokenCodec_Encode(t *testing.T) {
	codec := newTestCodec()
	secret := []byte("shared-secret")

	t.Run("fresh IV per call", func(t *testing.T) {
		attrs := tokenDomain.AttributeMap{"uid": "42", "email": "a@example.com"}

		token1, err := codec.Encode(attrs, secret)
		require.NoError(t, err)
		token2, err := codec.Encode(attrs, secret)
		require.NoError(t, err)

		// Identical input, different tokens, same decoded attributes.
		assert.NotEqual(t, token1, token2)

		decoded1, err := codec.Decode(token1, secret)
		require.NoError(t, err)
		decoded2, err := codec.Decode(token2, secret)
		require.NoError(t, err)
		assert.Equal(t, decoded1, decoded2)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		_, err := codec.Encode(tokenDomain.AttributeMap{"uid": "42"}, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrInvalidKey)
	})

	t.Run("empty attribute map is rejected", func(t *testing.T) {
		_, err := codec.Encode(tokenDomain.AttributeMap{}, secret)
		assert.ErrorIs(t, err, tokenDomain.ErrInvalidAttributeKey)
	})

	t.Run("reserved signature attribute is rejected", func(t *testing.T) {
		attrs := tokenDomain.AttributeMap{
			"uid":                      "42",
			tokenDomain.SignatureField: "forged",
		}
		_, err := codec.Encode(attrs, secret)
		assert.ErrorIs(t, err, tokenDomain.ErrReservedAttribute)
	})
}

func TestTokenCodec_Decode(t *testing.T) {
	codec := newTestCodec()
	secret := []byte("shared-secret")

	t.Run("reference token vector", func(t *testing.T) {
		// Token produced by the partner implementation with IV
		// "0123456789abcdef" over {"uid": "42", "email": "a@example.com"}
		// and secret "shared-secret".
		token := "MDEyMzQ1Njc4OWFiY2RlZh8nKvo7H32YeIkSZw+Cdt2IQ/Dj8clstQpjHdPUa+zP" +
			"phblC182+h2dph7rlXToFGdVD8tOeT1IsmvUoD6wHcWrI9FaUjkXgl+4Xs0+ZnUX"

		decoded, err := codec.Decode(token, secret)
		require.NoError(t, err)
		assert.Equal(t, tokenDomain.AttributeMap{
			"uid":   "42",
			"email": "a@example.com",
		}, decoded)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := codec.Decode("not!!valid!!base64", secret)
		assert.ErrorIs(t, err, tokenDomain.ErrInvalidTokenFormat)
	})

	t.Run("too short to hold IV and one block", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString(make([]byte, tokenDomain.IVSize))
		_, err := codec.Decode(short, secret)
		assert.ErrorIs(t, err, tokenDomain.ErrInvalidTokenFormat)
	})

	t.Run("ciphertext length not block aligned", func(t *testing.T) {
		ragged := base64.StdEncoding.EncodeToString(make([]byte, tokenDomain.IVSize+17))
		_, err := codec.Decode(ragged, secret)
		assert.ErrorIs(t, err, tokenDomain.ErrInvalidTokenFormat)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		_, err := codec.Decode("AAAA", nil)
		assert.ErrorIs(t, err, tokenDomain.ErrInvalidKey)
	})

	t.Run("missing signature field", func(t *testing.T) {
		token := encryptRaw(t, secret, "email=a%40example.com&uid=42")
		_, err := codec.Decode(token, secret)
		assert.ErrorIs(t, err, tokenDomain.ErrMissingSignatureField)
	})

	t.Run("unparsable plaintext", func(t *testing.T) {
		token := encryptRaw(t, secret, "this is not a canonical string")
		_, err := codec.Decode(token, secret)
		assert.ErrorIs(t, err, tokenDomain.ErrMalformedCanonicalString)
	})

	t.Run("forged signature", func(t *testing.T) {
		token := encryptRaw(t, secret, "sig=00000000000000000000000000000000&uid=42")
		_, err := codec.Decode(token, secret)
		assert.ErrorIs(t, err, tokenDomain.ErrSignatureMismatch)
	})
}

func TestTokenCodec_TamperDetection(t *testing.T) {
	codec := newTestCodec()
	secret := []byte("shared-secret")
	attrs := tokenDomain.AttributeMap{"uid": "42", "email": "a@example.com"}

	token, err := codec.Encode(attrs, secret)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)

	// Flip one byte at a time across the ciphertext portion. Depending on
	// which block is hit, decode fails on padding, parsing, or signature
	// verification; it must never succeed with altered data.
	for pos := tokenDomain.IVSize; pos < len(raw); pos++ {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[pos] ^= 0x01

		decoded, err := codec.Decode(base64.StdEncoding.EncodeToString(tampered), secret)
		require.Errorf(t, err, "flipping byte %d must not yield a valid token", pos)
		assert.Nil(t, decoded)
	}
}

func TestTokenCodec_WrongKeyRejection(t *testing.T) {
	codec := newTestCodec()
	attrs := tokenDomain.AttributeMap{"uid": "42", "email": "a@example.com"}

	token, err := codec.Encode(attrs, []byte("key-one"))
	require.NoError(t, err)

	// Decrypting with the wrong key produces garbage: usually an invalid
	// padding error, occasionally malformed parse or signature mismatch when
	// the padding bytes coincide. Never a success.
	decoded, err := codec.Decode(token, []byte("key-two"))
	require.Error(t, err)
	assert.Nil(t, decoded)
}

func TestTokenCodec_ConcurrentUse(t *testing.T) {
	codec := newTestCodec()
	secret := []byte("shared-secret")
	attrs := tokenDomain.AttributeMap{"uid": "42"}

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			token, err := codec.Encode(attrs, secret)
			if err != nil {
				done <- err
				return
			}
			_, err = codec.Decode(token, secret)
			done <- err
		}()
	}

	for i := 0; i < 16; i++ {
		assert.NoError(t, <-done)
	}
}
