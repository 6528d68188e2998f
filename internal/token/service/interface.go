// Package service implements the SSO token codec: key derivation, canonical
// parameter encoding, signature computation, and AES-CBC token encryption.
//
// The codec is a fixed interoperability format shared with partner
// implementations in other languages. Key derivation, padding, field escaping,
// and the signature construction are normative: changing any of them produces
// tokens that no existing partner can read. Treat the algorithms here as wire
// format, not as design choices.
package service

import (
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// KeyDeriver expands a variable-length shared secret into the fixed-size
// symmetric key used by the block cipher.
type KeyDeriver interface {
	// Derive computes the 32-byte symmetric key for the given secret.
	// Deterministic; rejects empty secrets with ErrInvalidKey.
	Derive(secretKey []byte) ([]byte, error)
}

// ParamCanonicalizer renders an attribute map into its deterministic,
// order-independent string form and parses that form back.
type ParamCanonicalizer interface {
	// Render produces the sorted, value-escaped, delimiter-joined canonical
	// string for the map.
	Render(attrs tokenDomain.AttributeMap) (string, error)

	// Parse is the inverse of Render. It rejects segments without a key/value
	// delimiter, duplicate keys, and invalid percent escapes.
	Parse(canonical string) (tokenDomain.AttributeMap, error)
}

// Signer computes and verifies the integrity signature bound to an attribute
// map and a shared secret.
type Signer interface {
	// Sign renders the map (signature field excluded) and returns the
	// lowercase hex digest over secret-then-canonical bytes.
	Sign(attrs tokenDomain.AttributeMap, secretKey []byte) (string, error)

	// Verify recomputes the expected signature and compares it in constant
	// time. A mismatch returns false, never an error, so the caller can tell
	// "decrypted but not trusted" apart from "malformed".
	Verify(attrs tokenDomain.AttributeMap, signature string, secretKey []byte) (bool, error)
}

// TokenCodec drives encryption and decryption of the signed canonical string
// into and out of the wire token.
type TokenCodec interface {
	// Encode signs the attributes, renders them with the signature field
	// included, and encrypts the result under a fresh random IV. Every call
	// produces a different token, even for identical input.
	Encode(attrs tokenDomain.AttributeMap, secretKey []byte) (string, error)

	// Decode reverses Encode: base64, IV split, decrypt, unpad, parse,
	// signature verification. The returned map has the signature field
	// stripped. Each failure mode surfaces as its own domain error.
	Decode(token string, secretKey []byte) (tokenDomain.AttributeMap, error)
}

// FieldCipher encrypts single attribute values under a privacy key that is
// separate from the token's SSO secret. Communities that enable field-level
// privacy expect sensitive values (email, real name) to arrive already
// encrypted inside the attribute map; the token layer then wraps the whole
// map as usual.
type FieldCipher interface {
	// EncryptField encrypts one value under a fresh random IV using the same
	// derivation and cipher as the token layer. Every call produces a
	// different ciphertext, even for identical input.
	EncryptField(value string, privacyKey []byte) (string, error)

	// DecryptField reverses EncryptField. Malformed input surfaces as
	// ErrInvalidTokenFormat or ErrInvalidPadding.
	DecryptField(encrypted string, privacyKey []byte) (string, error)
}
