package service

import (
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// pkcs7Pad appends PKCS#7 padding so len(out) is a multiple of blockSize.
// Input that is already block-aligned gets a full block of padding, which is
// what keeps the scheme reversible.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// pkcs7Unpad validates and strips PKCS#7 padding. Every padding byte is
// checked: with a wrong decryption key the final block is effectively random
// and a lone plausible last byte must not be enough to pass.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, tokenDomain.ErrInvalidPadding
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, tokenDomain.ErrInvalidPadding
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, tokenDomain.ErrInvalidPadding
		}
	}
	return data[:len(data)-padLen], nil
}
