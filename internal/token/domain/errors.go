// Package domain defines the SSO token codec domain model and errors.
package domain

import (
	"github.com/allisson/ssotoken/internal/errors"
)

// Token codec error definitions.
//
// Each decode failure mode gets its own sentinel so callers can tell a
// structurally broken token apart from one that decrypted but failed
// verification. All of them wrap the shared sentinels from internal/errors
// so HTTP handlers map them without special cases.
var (
	// ErrInvalidKey indicates the secret key failed the sanity check (empty)
	// before any cryptographic work began.
	ErrInvalidKey = errors.Wrap(errors.ErrInvalidInput, "invalid secret key")

	// ErrInvalidTokenFormat indicates the base64 decoding failed or the decoded
	// bytes are too short to contain an IV plus at least one cipher block.
	ErrInvalidTokenFormat = errors.Wrap(errors.ErrInvalidInput, "invalid token format")

	// ErrInvalidPadding indicates block padding removal failed after
	// decryption. This is the usual symptom of a wrong key or corrupted
	// ciphertext.
	ErrInvalidPadding = errors.Wrap(errors.ErrInvalidInput, "invalid block padding")

	// ErrMalformedCanonicalString indicates the decrypted plaintext could not
	// be parsed into key/value fields.
	ErrMalformedCanonicalString = errors.Wrap(errors.ErrInvalidInput, "malformed canonical string")

	// ErrMissingSignatureField indicates the parsed fields lack the reserved
	// signature field.
	ErrMissingSignatureField = errors.Wrap(errors.ErrInvalidInput, "missing signature field")

	// ErrSignatureMismatch indicates the recomputed signature does not match
	// the one carried by the token: wrong key, tampered data, or a forgery.
	ErrSignatureMismatch = errors.Wrap(errors.ErrUnauthorized, "signature mismatch")

	// ErrReservedAttribute indicates the caller supplied an attribute under
	// the reserved signature field name.
	ErrReservedAttribute = errors.Wrap(errors.ErrInvalidInput, "reserved attribute name")

	// ErrInvalidAttributeKey indicates an attribute key is empty or contains
	// characters that cannot survive canonical encoding.
	ErrInvalidAttributeKey = errors.Wrap(errors.ErrInvalidInput, "invalid attribute key")

	// ErrTokenExpired indicates the issued-at attribute is older than the
	// configured maximum token age.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")
)
