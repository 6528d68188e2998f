package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/allisson/ssotoken/internal/errors"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// tokenCodec implements TokenCodec over AES-256-CBC.
//
// Wire format: base64(standard alphabet) over a 16-byte random IV followed by
// the CBC ciphertext. No separator, no length prefix, no version byte; the
// split point is fixed at byte offset 16. CBC with PKCS#7 padding and an
// external digest signature is what the partner implementations speak, so an
// authenticated mode is not an option here.
//
// The codec is stateless: both operations are pure request/response calls,
// safe for concurrent use, with all derived values local to the call. The
// only shared resource is crypto/rand, which is safe for concurrent use.
type tokenCodec struct {
	deriver       KeyDeriver
	canonicalizer ParamCanonicalizer
	signer        Signer
}

// NewTokenCodec creates the codec from its collaborators. Pass the same
// canonicalizer instance to NewSigner and NewTokenCodec; both are stateless,
// it only matters that the escaping rules agree.
func NewTokenCodec(deriver KeyDeriver, canonicalizer ParamCanonicalizer, signer Signer) TokenCodec {
	return &tokenCodec{
		deriver:       deriver,
		canonicalizer: canonicalizer,
		signer:        signer,
	}
}

// Encode turns an attribute map into a wire token.
//
// Flow: validate → sign → re-render with the signature field → PKCS#7 pad →
// AES-256-CBC encrypt under a fresh random IV → base64(IV || ciphertext).
// The caller's map is never mutated; the signature is added on a copy.
// Every call draws a new IV, so identical input yields different tokens.
func (t *tokenCodec) Encode(attrs tokenDomain.AttributeMap, secretKey []byte) (string, error) {
	if len(secretKey) == 0 {
		return "", tokenDomain.ErrInvalidKey
	}
	if err := attrs.Validate(); err != nil {
		return "", err
	}

	signature, err := t.signer.Sign(attrs, secretKey)
	if err != nil {
		return "", err
	}

	canonical, err := t.canonicalizer.Render(
		attrs.WithAttribute(tokenDomain.SignatureField, signature),
	)
	if err != nil {
		return "", err
	}

	return sealPayload(t.deriver, []byte(canonical), secretKey)
}

// Decode turns a wire token back into its attribute map, verifying the
// signature before returning anything.
//
// Every failure mode is distinct and fail-closed: invalid base64 or short
// input is ErrInvalidTokenFormat, bad padding after decryption is
// ErrInvalidPadding, an unparsable plaintext is ErrMalformedCanonicalString,
// an absent signature field is ErrMissingSignatureField, and a verification
// failure is ErrSignatureMismatch. Nothing is retried: re-running a failed
// verification with the same inputs cannot succeed.
func (t *tokenCodec) Decode(token string, secretKey []byte) (tokenDomain.AttributeMap, error) {
	if len(secretKey) == 0 {
		return nil, tokenDomain.ErrInvalidKey
	}

	unpadded, err := openPayload(t.deriver, token, secretKey)
	if err != nil {
		return nil, err
	}

	attrs, err := t.canonicalizer.Parse(string(unpadded))
	if err != nil {
		return nil, err
	}

	signature, ok := attrs[tokenDomain.SignatureField]
	if !ok {
		return nil, tokenDomain.ErrMissingSignatureField
	}
	delete(attrs, tokenDomain.SignatureField)

	valid, err := t.signer.Verify(attrs, signature, secretKey)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, tokenDomain.ErrSignatureMismatch
	}

	return attrs, nil
}

// newCipherBlock derives the symmetric key and builds the AES block cipher.
// The derived key is cleared once the cipher holds its own key schedule.
func newCipherBlock(deriver KeyDeriver, secretKey []byte) (cipher.Block, error) {
	derived, err := deriver.Derive(secretKey)
	if err != nil {
		return nil, err
	}
	defer tokenDomain.Zero(derived)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create AES cipher")
	}
	return block, nil
}

// sealPayload pads and encrypts a plaintext under a fresh random IV and
// returns base64(IV || ciphertext). Shared by the token codec and the field
// cipher so both speak the same framing.
func sealPayload(deriver KeyDeriver, plaintext, secretKey []byte) (string, error) {
	block, err := newCipherBlock(deriver, secretKey)
	if err != nil {
		return "", err
	}

	iv := make([]byte, tokenDomain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", apperrors.Wrap(err, "failed to generate IV")
	}

	padded := pkcs7Pad(plaintext, tokenDomain.BlockSize)
	out := make([]byte, tokenDomain.IVSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[tokenDomain.IVSize:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// openPayload reverses sealPayload: base64, IV split, decrypt, unpad.
func openPayload(deriver KeyDeriver, encoded string, secretKey []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperrors.Wrap(tokenDomain.ErrInvalidTokenFormat, "invalid base64")
	}
	if len(raw) < tokenDomain.IVSize+tokenDomain.BlockSize ||
		(len(raw)-tokenDomain.IVSize)%tokenDomain.BlockSize != 0 {
		return nil, apperrors.Wrap(tokenDomain.ErrInvalidTokenFormat, "bad ciphertext length")
	}

	block, err := newCipherBlock(deriver, secretKey)
	if err != nil {
		return nil, err
	}

	iv := raw[:tokenDomain.IVSize]
	plaintext := make([]byte, len(raw)-tokenDomain.IVSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, raw[tokenDomain.IVSize:])

	return pkcs7Unpad(plaintext, tokenDomain.BlockSize)
}
