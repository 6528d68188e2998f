// Package repository implements data persistence for registered parties.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16) types.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/ssotoken/internal/database"
	apperrors "github.com/allisson/ssotoken/internal/errors"
	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
)

// PostgreSQLPartyRepository implements Party persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLPartyRepository struct {
	db *sql.DB
}

// NewPostgreSQLPartyRepository creates a new PostgreSQL Party repository.
func NewPostgreSQLPartyRepository(db *sql.DB) *PostgreSQLPartyRepository {
	return &PostgreSQLPartyRepository{db: db}
}

// Create inserts a new Party into the PostgreSQL database.
// Returns ErrPartyAlreadyExists if the party name is already taken.
func (p *PostgreSQLPartyRepository) Create(ctx context.Context, party *partyDomain.Party) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO parties (id, name, domain, api_secret_hash, wrapped_sso_key, wrapped_privacy_key, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		party.ID,
		party.Name,
		party.Domain,
		party.APISecretHash,
		party.WrappedSSOKey,
		party.WrappedPrivacyKey,
		party.IsActive,
		party.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return partyDomain.ErrPartyAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create party")
	}
	return nil
}

// Get retrieves a Party by ID from the PostgreSQL database.
func (p *PostgreSQLPartyRepository) Get(ctx context.Context, partyID uuid.UUID) (*partyDomain.Party, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, domain, api_secret_hash, wrapped_sso_key, wrapped_privacy_key, is_active, created_at, deactivated_at
			  FROM parties WHERE id = $1`

	var party partyDomain.Party

	err := querier.QueryRowContext(ctx, query, partyID).Scan(
		&party.ID,
		&party.Name,
		&party.Domain,
		&party.APISecretHash,
		&party.WrappedSSOKey,
		&party.WrappedPrivacyKey,
		&party.IsActive,
		&party.CreatedAt,
		&party.DeactivatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, partyDomain.ErrPartyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get party")
	}

	return &party, nil
}

// GetByName retrieves a Party by its unique name from the PostgreSQL database.
func (p *PostgreSQLPartyRepository) GetByName(ctx context.Context, name string) (*partyDomain.Party, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, domain, api_secret_hash, wrapped_sso_key, wrapped_privacy_key, is_active, created_at, deactivated_at
			  FROM parties WHERE name = $1`

	var party partyDomain.Party

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&party.ID,
		&party.Name,
		&party.Domain,
		&party.APISecretHash,
		&party.WrappedSSOKey,
		&party.WrappedPrivacyKey,
		&party.IsActive,
		&party.CreatedAt,
		&party.DeactivatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, partyDomain.ErrPartyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get party by name")
	}

	return &party, nil
}

// Update modifies an existing Party in the PostgreSQL database.
func (p *PostgreSQLPartyRepository) Update(ctx context.Context, party *partyDomain.Party) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE parties
			  SET domain = $1,
			  	  api_secret_hash = $2,
				  wrapped_sso_key = $3,
				  wrapped_privacy_key = $4,
				  is_active = $5,
				  deactivated_at = $6
			  WHERE id = $7`

	_, err := querier.ExecContext(
		ctx,
		query,
		party.Domain,
		party.APISecretHash,
		party.WrappedSSOKey,
		party.WrappedPrivacyKey,
		party.IsActive,
		party.DeactivatedAt,
		party.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update party")
	}

	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
