package commands

import (
	"fmt"
	"strings"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
	tokenService "github.com/allisson/ssotoken/internal/token/service"
)

// RunIssueToken encodes a token offline from a hex key and k=v attributes.
// No database or server required; useful for testing partner integrations.
func RunIssueToken(keyHex string, attrPairs []string, io IOTuple) error {
	key, err := partyDomain.ParseSSOKeyHex(keyHex)
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	defer tokenDomain.Zero(key)

	attrs, err := parseAttributePairs(attrPairs)
	if err != nil {
		return err
	}

	token, err := newOfflineCodec().Encode(attrs, key)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, token)
	return nil
}

// parseAttributePairs converts "k=v" strings into an attribute map.
func parseAttributePairs(pairs []string) (tokenDomain.AttributeMap, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("at least one --attr k=v is required")
	}

	attrs := make(tokenDomain.AttributeMap, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid attribute %q (expected k=v)", pair)
		}
		if _, exists := attrs[key]; exists {
			return nil, fmt.Errorf("duplicate attribute %q", key)
		}
		attrs[key] = value
	}

	return attrs, nil
}

// newOfflineCodec builds a token codec without any server dependencies.
func newOfflineCodec() tokenService.TokenCodec {
	canonicalizer := tokenService.NewParamCanonicalizer()
	return tokenService.NewTokenCodec(
		tokenService.NewKeyDeriver(),
		canonicalizer,
		tokenService.NewSigner(canonicalizer),
	)
}
