package http

import (
	"context"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
)

// partyKey is a context key type for storing authenticated parties.
type partyKey struct{}

// WithParty stores an authenticated party in the context.
// This is called by the authentication middleware after successful
// credential verification.
func WithParty(ctx context.Context, party *partyDomain.Party) context.Context {
	return context.WithValue(ctx, partyKey{}, party)
}

// GetParty retrieves an authenticated party from the context.
// Returns (party, true) if a party is present, or (nil, false) if no party
// was set.
func GetParty(ctx context.Context) (*partyDomain.Party, bool) {
	party, ok := ctx.Value(partyKey{}).(*partyDomain.Party)
	return party, ok
}
