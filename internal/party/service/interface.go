// Package service provides technical services for party credential management.
//
// This package implements reusable services for API secret generation and
// hashing, KMS keeper access, and SSO key wrapping using envelope encryption.
package service

import (
	"context"
)

// SecretService defines operations for party API secret generation and validation.
// Implementations must use cryptographically secure random generation and
// industry-standard hashing algorithms (e.g., bcrypt, argon2).
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (to be shared with the party) and
	// the hashed version (to be stored in the database).
	//
	// The plain secret should be treated as sensitive data and only displayed
	// once to the party during registration.
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret using a secure hashing algorithm.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain text secret against a hashed secret.
	// Returns true if the plain secret matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// KeyWrapper defines envelope encryption for party SSO secrets at rest.
//
// Wrap generates a fresh data key, encrypts the SSO secret with it, and wraps
// the data key with the KMS master key. Unwrap reverses the process. The
// returned blob is opaque to callers and safe to persist.
type KeyWrapper interface {
	Wrap(ctx context.Context, ssoKey []byte) ([]byte, error)
	Unwrap(ctx context.Context, blob []byte) ([]byte, error)
}
