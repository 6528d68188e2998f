// Package domain defines the registered party domain model.
//
// A party is a relying application that issues and redeems SSO tokens. Each
// party owns a shared SSO secret used for token encryption and an API secret
// used to authenticate against the HTTP API. The SSO secret is stored wrapped
// by the configured KMS master key and only unwrapped in memory when a token
// operation needs it.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Party represents a registered relying application.
type Party struct {
	ID                uuid.UUID  // Unique identifier (UUIDv7)
	Name              string     // Unique machine-readable party name
	Domain            string     // Cookie/transport domain reported inside issued tokens
	APISecretHash     string     // Argon2id hash of the party API secret (never plaintext)
	WrappedSSOKey     []byte     // SSO secret wrapped by the KMS master key (envelope format)
	WrappedPrivacyKey []byte     // Optional field-privacy secret, wrapped like the SSO secret (nil when unset)
	IsActive          bool       // Whether the party may issue and redeem tokens
	CreatedAt         time.Time
	DeactivatedAt     *time.Time // Time the party was deactivated (nil while active)
}

// CreatePartyInput contains the parameters for registering a new party.
// The API secret is generated server-side and cannot be chosen by the caller.
type CreatePartyInput struct {
	Name          string // Unique machine-readable party name
	Domain        string // Domain reported inside issued tokens
	SSOKeyHex     string // Hex-encoded shared SSO secret (128 or 256 bits)
	PrivacyKeyHex string // Optional hex-encoded field-privacy secret (128 or 256 bits)
	IsActive      bool   // Whether the party can operate immediately after creation
}

// CreatePartyOutput contains the result of registering a new party.
// The PlainAPISecret is only returned once and is never retrievable again.
type CreatePartyOutput struct {
	ID             uuid.UUID // Unique identifier for the created party (UUIDv7)
	PlainAPISecret string    // Plain text API secret (transmit securely, never log)
}
