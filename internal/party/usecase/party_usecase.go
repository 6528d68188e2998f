// Package usecase implements business logic orchestration for party management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/allisson/ssotoken/internal/database"
	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	partyService "github.com/allisson/ssotoken/internal/party/service"
)

// partyUseCase implements PartyUseCase for managing registered parties.
type partyUseCase struct {
	txManager     database.TxManager
	partyRepo     PartyRepository
	secretService partyService.SecretService
	keyWrapper    partyService.KeyWrapper
	lookupGroup   singleflight.Group
}

// NewPartyUseCase creates a new PartyUseCase with the provided dependencies.
func NewPartyUseCase(
	txManager database.TxManager,
	partyRepo PartyRepository,
	secretService partyService.SecretService,
	keyWrapper partyService.KeyWrapper,
) PartyUseCase {
	return &partyUseCase{
		txManager:     txManager,
		partyRepo:     partyRepo,
		secretService: secretService,
		keyWrapper:    keyWrapper,
	}
}

// Create registers a new party with a random API secret and a KMS-wrapped SSO secret.
// The plain API secret is only returned once and must be securely stored by the caller.
func (p *partyUseCase) Create(
	ctx context.Context,
	createPartyInput *partyDomain.CreatePartyInput,
) (*partyDomain.CreatePartyOutput, error) {
	ssoKey, err := partyDomain.ParseSSOKeyHex(createPartyInput.SSOKeyHex)
	if err != nil {
		return nil, err
	}

	wrappedKey, err := p.keyWrapper.Wrap(ctx, ssoKey)
	if err != nil {
		return nil, err
	}

	var wrappedPrivacyKey []byte
	if createPartyInput.PrivacyKeyHex != "" {
		privacyKey, err := partyDomain.ParsePrivacyKeyHex(createPartyInput.PrivacyKeyHex)
		if err != nil {
			return nil, err
		}
		wrappedPrivacyKey, err = p.keyWrapper.Wrap(ctx, privacyKey)
		if err != nil {
			return nil, err
		}
	}

	// Generate a secure random API secret
	plainSecret, hashedSecret, err := p.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	party := &partyDomain.Party{
		ID:                uuid.Must(uuid.NewV7()),
		Name:              createPartyInput.Name,
		Domain:            createPartyInput.Domain,
		APISecretHash:     hashedSecret,
		WrappedSSOKey:     wrappedKey,
		WrappedPrivacyKey: wrappedPrivacyKey,
		IsActive:          createPartyInput.IsActive,
		CreatedAt:         time.Now().UTC(),
	}

	if err := p.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	return &partyDomain.CreatePartyOutput{
		ID:             party.ID,
		PlainAPISecret: plainSecret,
	}, nil
}

// Get retrieves a party by ID.
func (p *partyUseCase) Get(ctx context.Context, partyID uuid.UUID) (*partyDomain.Party, error) {
	return p.partyRepo.Get(ctx, partyID)
}

// GetByName retrieves a party by name. Concurrent lookups for the same name
// share a single repository query via singleflight.
func (p *partyUseCase) GetByName(ctx context.Context, name string) (*partyDomain.Party, error) {
	v, err, _ := p.lookupGroup.Do(name, func() (interface{}, error) {
		return p.partyRepo.GetByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(*partyDomain.Party), nil
}

// Authenticate verifies the API secret for a party.
func (p *partyUseCase) Authenticate(
	ctx context.Context,
	partyID uuid.UUID,
	plainSecret string,
) (*partyDomain.Party, error) {
	party, err := p.partyRepo.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if !p.secretService.CompareSecret(plainSecret, party.APISecretHash) {
		return nil, partyDomain.ErrInvalidAPISecret
	}

	if !party.IsActive {
		return nil, partyDomain.ErrPartyInactive
	}

	return party, nil
}

// SSOKey unwraps the party's SSO secret for a token operation.
func (p *partyUseCase) SSOKey(ctx context.Context, party *partyDomain.Party) ([]byte, error) {
	if !party.IsActive {
		return nil, partyDomain.ErrPartyInactive
	}
	return p.keyWrapper.Unwrap(ctx, party.WrappedSSOKey)
}

// PrivacyKey unwraps the party's field-privacy secret. Parties registered
// without one get ErrNoPrivacyKey.
func (p *partyUseCase) PrivacyKey(ctx context.Context, party *partyDomain.Party) ([]byte, error) {
	if !party.IsActive {
		return nil, partyDomain.ErrPartyInactive
	}
	if len(party.WrappedPrivacyKey) == 0 {
		return nil, partyDomain.ErrNoPrivacyKey
	}
	return p.keyWrapper.Unwrap(ctx, party.WrappedPrivacyKey)
}

// Deactivate performs a soft delete on a party by setting IsActive to false.
func (p *partyUseCase) Deactivate(ctx context.Context, partyID uuid.UUID) error {
	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		party, err := p.partyRepo.Get(ctx, partyID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		party.IsActive = false
		party.DeactivatedAt = &now

		return p.partyRepo.Update(ctx, party)
	})
}
