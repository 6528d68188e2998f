package domain

import (
	"encoding/hex"
)

// ParseSSOKeyHex decodes a hex-encoded SSO secret and checks its size.
// Only 128-bit and 256-bit keys are accepted.
func ParseSSOKeyHex(s string) ([]byte, error) {
	return parseKeyHex(s, ErrInvalidSSOKey)
}

// ParsePrivacyKeyHex decodes a hex-encoded field-privacy secret. Same size
// rules as the SSO secret.
func ParsePrivacyKeyHex(s string) ([]byte, error) {
	return parseKeyHex(s, ErrInvalidPrivacyKey)
}

func parseKeyHex(s string, invalid error) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, invalid
	}
	if len(raw) != 16 && len(raw) != 32 {
		return nil, invalid
	}
	return raw, nil
}
