package commands

import (
	"fmt"
	"sort"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// RunDecodeToken decodes and verifies a token offline from a hex key.
// No database or server required; prints the attributes sorted by key.
func RunDecodeToken(keyHex, token string, io IOTuple) error {
	key, err := partyDomain.ParseSSOKeyHex(keyHex)
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	defer tokenDomain.Zero(key)

	attrs, err := newOfflineCodec().Decode(token, key)
	if err != nil {
		return fmt.Errorf("failed to decode token: %w", err)
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, attrKey := range keys {
		_, _ = fmt.Fprintf(io.Writer, "%s=%s\n", attrKey, attrs[attrKey])
	}

	return nil
}
