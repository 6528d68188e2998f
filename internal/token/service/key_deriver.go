package service

import (
	//nolint:gosec // MD5 is mandated by the partner token format, not chosen
	"crypto/md5"

	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// md5KeyDeriver implements KeyDeriver with the partner format's two-round
// MD5 expansion.
//
// The cipher wants a 32-byte key but MD5 natively yields 16 bytes, so the
// reference scheme runs two chained rounds:
//
//	h1 = MD5(secret)
//	h2 = MD5(h1 || secret)
//	derived = h1 || h2
//
// Any other expansion produces a key incompatible with every existing token
// and every partner implementation.
type md5KeyDeriver struct{}

// NewKeyDeriver creates the key deriver used by the token codec.
func NewKeyDeriver() KeyDeriver {
	return &md5KeyDeriver{}
}

// Derive computes the 32-byte AES key for the given secret. It is a pure
// function of its input: same secret, same key, no side effects. Empty
// secrets are rejected before any hashing.
func (d *md5KeyDeriver) Derive(secretKey []byte) ([]byte, error) {
	if len(secretKey) == 0 {
		return nil, tokenDomain.ErrInvalidKey
	}

	h1 := md5.Sum(secretKey) //nolint:gosec // wire format requirement

	second := make([]byte, 0, len(h1)+len(secretKey))
	second = append(second, h1[:]...)
	second = append(second, secretKey...)
	h2 := md5.Sum(second) //nolint:gosec // wire format requirement

	derived := make([]byte, 0, tokenDomain.DerivedKeySize)
	derived = append(derived, h1[:]...)
	derived = append(derived, h2[:]...)
	return derived, nil
}
