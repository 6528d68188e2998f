// Package usecase implements business logic orchestration for token operations.
package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/ssotoken/internal/errors"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
	tokenService "github.com/allisson/ssotoken/internal/token/service"
)

// tokenUseCase implements TokenUseCase on top of the token codec and the
// party registry.
type tokenUseCase struct {
	partyProvider PartyProvider
	codec         tokenService.TokenCodec
	fieldCipher   tokenService.FieldCipher
	maxAge        time.Duration
	now           func() time.Time
}

// NewTokenUseCase creates a new TokenUseCase. A maxAge of zero disables the
// freshness check on redeem.
func NewTokenUseCase(
	partyProvider PartyProvider,
	codec tokenService.TokenCodec,
	fieldCipher tokenService.FieldCipher,
	maxAge time.Duration,
) TokenUseCase {
	return &tokenUseCase{
		partyProvider: partyProvider,
		codec:         codec,
		fieldCipher:   fieldCipher,
		maxAge:        maxAge,
		now:           time.Now,
	}
}

// Issue encodes a token for the named party with protocol attributes injected.
// Attribute names owned by the issuer are rejected up front, matching how the
// codec treats the signature field.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	partyName string,
	attrs tokenDomain.AttributeMap,
) (string, string, error) {
	for name := range attrs {
		if tokenDomain.IsProtocolAttribute(name) {
			return "", "", apperrors.Wrap(tokenDomain.ErrReservedAttribute, name)
		}
	}

	party, err := t.partyProvider.GetByName(ctx, partyName)
	if err != nil {
		return "", "", err
	}

	key, err := t.partyProvider.SSOKey(ctx, party)
	if err != nil {
		return "", "", err
	}
	defer tokenDomain.Zero(key)

	tokenID := uuid.Must(uuid.NewV7()).String()

	full := attrs.Clone()
	if full == nil {
		full = tokenDomain.AttributeMap{}
	}
	full[tokenDomain.AttrClientID] = party.Name
	full[tokenDomain.AttrClientDomain] = party.Domain
	full[tokenDomain.AttrIssuedAt] = strconv.FormatInt(t.now().UnixMilli(), 10)
	full[tokenDomain.AttrTokenID] = tokenID

	token, err := t.codec.Encode(full, key)
	if err != nil {
		return "", "", err
	}

	return token, tokenID, nil
}

// Redeem decodes a token for the named party and enforces the freshness
// window when one is configured.
func (t *tokenUseCase) Redeem(
	ctx context.Context,
	partyName string,
	token string,
) (tokenDomain.AttributeMap, error) {
	party, err := t.partyProvider.GetByName(ctx, partyName)
	if err != nil {
		return nil, err
	}

	key, err := t.partyProvider.SSOKey(ctx, party)
	if err != nil {
		return nil, err
	}
	defer tokenDomain.Zero(key)

	attrs, err := t.codec.Decode(token, key)
	if err != nil {
		return nil, err
	}

	if t.maxAge > 0 {
		if err := t.checkFreshness(attrs); err != nil {
			return nil, err
		}
	}

	return attrs, nil
}

// EncryptAttribute encrypts a single value under the named party's
// field-privacy secret. The caller embeds the result as an ordinary
// attribute in a later Issue call.
func (t *tokenUseCase) EncryptAttribute(
	ctx context.Context,
	partyName string,
	value string,
) (string, error) {
	party, err := t.partyProvider.GetByName(ctx, partyName)
	if err != nil {
		return "", err
	}

	key, err := t.partyProvider.PrivacyKey(ctx, party)
	if err != nil {
		return "", err
	}
	defer tokenDomain.Zero(key)

	return t.fieldCipher.EncryptField(value, key)
}

// checkFreshness rejects tokens whose issue time is missing, unparsable, or
// older than the configured maximum age. Fails closed: a token without a
// usable issue time is treated as expired.
func (t *tokenUseCase) checkFreshness(attrs tokenDomain.AttributeMap) error {
	raw, ok := attrs[tokenDomain.AttrIssuedAt]
	if !ok {
		return tokenDomain.ErrTokenExpired
	}

	issuedAtMillis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return tokenDomain.ErrTokenExpired
	}

	issuedAt := time.UnixMilli(issuedAtMillis)
	if t.now().Sub(issuedAt) > t.maxAge {
		return tokenDomain.ErrTokenExpired
	}

	return nil
}
