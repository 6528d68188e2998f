package domain

import (
	"github.com/allisson/ssotoken/internal/errors"
)

// Party registration and authentication errors.
var (
	// ErrPartyNotFound indicates a party with the specified name or ID was not found.
	ErrPartyNotFound = errors.Wrap(errors.ErrNotFound, "party not found")

	// ErrPartyAlreadyExists indicates a party with the specified name already exists.
	ErrPartyAlreadyExists = errors.Wrap(errors.ErrConflict, "party already exists")

	// ErrPartyInactive indicates the party is deactivated and may not issue or redeem tokens.
	ErrPartyInactive = errors.Wrap(errors.ErrForbidden, "party is inactive")

	// ErrInvalidAPISecret indicates the supplied API secret does not match the stored hash.
	ErrInvalidAPISecret = errors.Wrap(errors.ErrUnauthorized, "invalid api secret")

	// ErrInvalidSSOKey indicates the supplied SSO secret is not valid hex or has the wrong size.
	ErrInvalidSSOKey = errors.Wrap(errors.ErrInvalidInput, "invalid sso key")

	// ErrInvalidPrivacyKey indicates the supplied privacy secret is not valid hex or has the wrong size.
	ErrInvalidPrivacyKey = errors.Wrap(errors.ErrInvalidInput, "invalid privacy key")

	// ErrNoPrivacyKey indicates a field privacy operation was requested for a
	// party registered without a privacy key.
	ErrNoPrivacyKey = errors.Wrap(errors.ErrInvalidInput, "party has no privacy key")
)
