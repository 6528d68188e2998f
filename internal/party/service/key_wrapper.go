package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"gocloud.dev/secrets"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/ssotoken/internal/errors"
)

// hkdfInfo versions the key derivation context for future algorithm changes.
const hkdfInfo = "party-sso-key-wrap-v1"

// kmsKeyWrapper implements KeyWrapper using envelope encryption.
//
// Each Wrap call generates a fresh 32-byte data key. The SSO secret is
// encrypted with ChaCha20-Poly1305 under a key derived from the data key via
// HKDF-SHA256, and the data key itself is wrapped by the KMS master key. The
// persisted blob carries the wrapped data key, the nonce, and the ciphertext
// with length-prefixed framing.
type kmsKeyWrapper struct {
	keeper *secrets.Keeper
}

// NewKMSKeyWrapper creates a KeyWrapper backed by the given KMS keeper.
func NewKMSKeyWrapper(keeper *secrets.Keeper) KeyWrapper {
	return &kmsKeyWrapper{keeper: keeper}
}

// deriveEncryptionKey uses HKDF-SHA256 to derive a 32-byte encryption key
// from the data key. Separates storage key usage from wrap key usage.
func deriveEncryptionKey(dataKey []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, dataKey, nil, []byte(hkdfInfo))

	encKey := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(reader, encKey); err != nil {
		return nil, err
	}

	return encKey, nil
}

// Wrap envelope-encrypts the SSO secret for persistence.
func (w *kmsKeyWrapper) Wrap(ctx context.Context, ssoKey []byte) ([]byte, error) {
	dataKey := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(dataKey); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate data key")
	}
	defer zero(dataKey)

	encKey, err := deriveEncryptionKey(dataKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive encryption key")
	}
	defer zero(encKey)

	aead, err := chacha20poly1305.New(encKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create cipher")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate nonce")
	}

	ciphertext := aead.Seal(nil, nonce, ssoKey, nil)

	wrappedDataKey, err := w.keeper.Encrypt(ctx, dataKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to wrap data key")
	}

	// Blob format: [len][wrapped data key] [len][nonce] [ciphertext]
	blob := make([]byte, 0, 8+len(wrappedDataKey)+len(nonce)+len(ciphertext))
	blob = appendLengthPrefixed(blob, wrappedDataKey)
	blob = appendLengthPrefixed(blob, nonce)
	blob = append(blob, ciphertext...)

	return blob, nil
}

// Unwrap recovers the SSO secret from a persisted blob.
func (w *kmsKeyWrapper) Unwrap(ctx context.Context, blob []byte) ([]byte, error) {
	wrappedDataKey, rest, err := readLengthPrefixed(blob)
	if err != nil {
		return nil, apperrors.Wrap(err, "malformed wrapped key blob")
	}
	nonce, ciphertext, err := readLengthPrefixed(rest)
	if err != nil {
		return nil, apperrors.Wrap(err, "malformed wrapped key blob")
	}

	dataKey, err := w.keeper.Decrypt(ctx, wrappedDataKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unwrap data key")
	}
	defer zero(dataKey)

	encKey, err := deriveEncryptionKey(dataKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive encryption key")
	}
	defer zero(encKey)

	aead, err := chacha20poly1305.New(encKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create cipher")
	}

	ssoKey, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt sso key")
	}

	return ssoKey, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// readLengthPrefixed reads a 4-byte big-endian length prefix and returns the
// framed field plus the remaining bytes.
func readLengthPrefixed(buf []byte) (field, rest []byte, err error) {
	if len(buf) < 4 {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	length := binary.BigEndian.Uint32(buf[:4])
	if uint32(len(buf)-4) < length {
		return nil, nil, fmt.Errorf("truncated field")
	}
	return buf[4 : 4+length], buf[4+length:], nil
}

// zero overwrites sensitive key material in memory.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
