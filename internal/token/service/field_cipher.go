package service

import (
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// fieldCipher implements FieldCipher with the token layer's framing applied
// to a single value: base64(IV || AES-256-CBC(PKCS#7(value))) under a key
// derived from the privacy secret. There is no canonical string and no
// signature; integrity comes from the signed token the value travels in.
type fieldCipher struct {
	deriver KeyDeriver
}

// NewFieldCipher creates the field cipher used for privacy-protected
// attribute values.
func NewFieldCipher(deriver KeyDeriver) FieldCipher {
	return &fieldCipher{deriver: deriver}
}

// EncryptField encrypts one value under the privacy key. A fresh IV per call
// means identical values produce different ciphertexts.
func (f *fieldCipher) EncryptField(value string, privacyKey []byte) (string, error) {
	if len(privacyKey) == 0 {
		return "", tokenDomain.ErrInvalidKey
	}
	return sealPayload(f.deriver, []byte(value), privacyKey)
}

// DecryptField reverses EncryptField.
func (f *fieldCipher) DecryptField(encrypted string, privacyKey []byte) (string, error) {
	if len(privacyKey) == 0 {
		return "", tokenDomain.ErrInvalidKey
	}
	plaintext, err := openPayload(f.deriver, encrypted, privacyKey)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
