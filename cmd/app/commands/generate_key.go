package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RunGenerateKey generates a random SSO shared secret and prints it as hex.
// Supported sizes are 128 and 256 bits. The key is shared out of band with
// the partner that will decode tokens, never stored by this command.
func RunGenerateKey(bits int, io IOTuple) error {
	if bits != 128 && bits != 256 {
		return fmt.Errorf("invalid key size: %d (valid options: 128, 256)", bits)
	}

	key := make([]byte, bits/8)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, hex.EncodeToString(key))

	// Zero out the key from memory
	for i := range key {
		key[i] = 0
	}

	return nil
}
