// Package usecase defines business logic interfaces for token operations.
package usecase

import (
	"context"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// PartyProvider resolves registered parties and their SSO secrets.
// The party use case satisfies this interface.
type PartyProvider interface {
	// GetByName retrieves a party by its unique name. Returns
	// ErrPartyNotFound if not found.
	GetByName(ctx context.Context, name string) (*partyDomain.Party, error)

	// SSOKey unwraps and returns the party's plaintext SSO secret. Callers
	// must zero the returned key after use.
	SSOKey(ctx context.Context, party *partyDomain.Party) ([]byte, error)

	// PrivacyKey unwraps and returns the party's plaintext field-privacy
	// secret. Returns ErrNoPrivacyKey when the party has none configured.
	// Callers must zero the returned key after use.
	PrivacyKey(ctx context.Context, party *partyDomain.Party) ([]byte, error)
}

// TokenUseCase defines business logic operations for issuing and redeeming
// SSO tokens on behalf of registered parties.
type TokenUseCase interface {
	// Issue builds and encodes a token for the named party. The caller's
	// attributes are augmented with the protocol attributes (client id,
	// client domain, issue time, token id) before signing and encryption.
	// Caller maps carrying any of those names are rejected with
	// ErrReservedAttribute.
	//
	// Returns the encoded token string, the token id, and an error.
	Issue(ctx context.Context, partyName string, attrs tokenDomain.AttributeMap) (token, tokenID string, err error)

	// Redeem decodes and verifies a token for the named party. When a
	// maximum token age is configured, tokens older than the limit are
	// rejected with ErrTokenExpired. Returns the full attribute map,
	// protocol attributes included, signature field stripped.
	Redeem(ctx context.Context, partyName string, token string) (tokenDomain.AttributeMap, error)

	// EncryptAttribute encrypts a single attribute value under the named
	// party's field-privacy secret. The ciphertext carries no signature of
	// its own and is meant to travel inside a signed token. Parties without
	// a privacy key get ErrNoPrivacyKey.
	EncryptAttribute(ctx context.Context, partyName string, value string) (string, error)
}
