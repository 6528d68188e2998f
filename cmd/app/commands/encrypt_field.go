package commands

import (
	"fmt"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
	tokenService "github.com/allisson/ssotoken/internal/token/service"
)

// RunEncryptField encrypts a single attribute value offline from a hex
// privacy key. No database or server required; prints the ciphertext ready
// to embed as an ordinary attribute in an issue request.
func RunEncryptField(keyHex, value string, io IOTuple) error {
	key, err := partyDomain.ParsePrivacyKeyHex(keyHex)
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	defer tokenDomain.Zero(key)

	cipher := tokenService.NewFieldCipher(tokenService.NewKeyDeriver())
	encrypted, err := cipher.EncryptField(value, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, encrypted)
	return nil
}
