// Package usecase defines business logic interfaces for party management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
)

// PartyRepository defines persistence operations for registered parties.
// Implementations must support transaction-aware operations via context propagation.
type PartyRepository interface {
	// Create stores a new party. Returns ErrPartyAlreadyExists on duplicate names.
	Create(ctx context.Context, party *partyDomain.Party) error

	// Update modifies an existing party in the repository.
	Update(ctx context.Context, party *partyDomain.Party) error

	// Get retrieves a party by ID. Returns ErrPartyNotFound if not found.
	Get(ctx context.Context, partyID uuid.UUID) (*partyDomain.Party, error)

	// GetByName retrieves a party by its unique name. Returns ErrPartyNotFound if not found.
	GetByName(ctx context.Context, name string) (*partyDomain.Party, error)
}

// PartyUseCase defines business logic operations for managing registered parties.
type PartyUseCase interface {
	// Create registers a new party with a server-generated API secret and the
	// party's SSO secret wrapped by the KMS master key.
	//
	// Returns the party ID and plain text API secret. The plain secret is only
	// returned once and should be securely transmitted to the party
	// administrator. The hashed version is stored in the database.
	Create(
		ctx context.Context,
		createPartyInput *partyDomain.CreatePartyInput,
	) (*partyDomain.CreatePartyOutput, error)

	// Get retrieves a party by ID. Returns ErrPartyNotFound if not found.
	Get(ctx context.Context, partyID uuid.UUID) (*partyDomain.Party, error)

	// GetByName retrieves a party by its unique name. Concurrent lookups for
	// the same name are collapsed into a single repository query.
	GetByName(ctx context.Context, name string) (*partyDomain.Party, error)

	// Authenticate verifies a party API secret against the stored hash.
	// Returns the party on success, ErrInvalidAPISecret on mismatch, and
	// ErrPartyInactive for deactivated parties.
	Authenticate(ctx context.Context, partyID uuid.UUID, plainSecret string) (*partyDomain.Party, error)

	// SSOKey unwraps and returns the party's plaintext SSO secret. Callers
	// must zero the returned key after use.
	SSOKey(ctx context.Context, party *partyDomain.Party) ([]byte, error)

	// PrivacyKey unwraps and returns the party's field-privacy secret.
	// Returns ErrNoPrivacyKey for parties registered without one. Callers
	// must zero the returned key after use.
	PrivacyKey(ctx context.Context, party *partyDomain.Party) ([]byte, error)

	// Deactivate performs a soft delete by setting IsActive to false,
	// preventing token operations while preserving the party record.
	Deactivate(ctx context.Context, partyID uuid.UUID) error
}
