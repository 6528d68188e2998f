package service

import (
	"crypto/hmac"
	//nolint:gosec // MD5 is mandated by the partner token format, not chosen
	"crypto/md5"
	"encoding/hex"

	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// digestSigner implements Signer with the partner format's keyed digest:
// MD5 over the raw secret key bytes followed by the canonical string bytes,
// hex-encoded lowercase.
//
// This is a plain hash over secret-prefixed input, not an HMAC; the scheme
// predates dedicated MAC constructions in the partner ecosystem and
// interoperability requires matching it exactly. Binding the secret into the
// signed material is the only authentication the format has, so the
// concatenation order (secret first, canonical second) is part of the wire
// format.
type digestSigner struct {
	canonicalizer ParamCanonicalizer
}

// NewSigner creates the signer used by the token codec.
func NewSigner(canonicalizer ParamCanonicalizer) Signer {
	return &digestSigner{canonicalizer: canonicalizer}
}

// Sign renders the map, excluding any pre-existing signature field, and
// computes the lowercase hex digest. The caller's map is never mutated.
func (s *digestSigner) Sign(attrs tokenDomain.AttributeMap, secretKey []byte) (string, error) {
	if len(secretKey) == 0 {
		return "", tokenDomain.ErrInvalidKey
	}

	unsigned := attrs
	if _, ok := attrs[tokenDomain.SignatureField]; ok {
		unsigned = attrs.Clone()
		delete(unsigned, tokenDomain.SignatureField)
	}

	canonical, err := s.canonicalizer.Render(unsigned)
	if err != nil {
		return "", err
	}

	input := make([]byte, 0, len(secretKey)+len(canonical))
	input = append(input, secretKey...)
	input = append(input, canonical...)
	digest := md5.Sum(input) //nolint:gosec // wire format requirement

	return hex.EncodeToString(digest[:]), nil
}

// Verify recomputes the expected signature and compares in constant time.
// The boolean result is authoritative: false means mismatch, and the error
// is reserved for failures to compute the expected value at all (bad key,
// unrenderable map).
func (s *digestSigner) Verify(
	attrs tokenDomain.AttributeMap,
	signature string,
	secretKey []byte,
) (bool, error) {
	expected, err := s.Sign(attrs, secretKey)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}
