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

// MySQLPartyRepository implements Party persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLPartyRepository struct {
	db *sql.DB
}

// NewMySQLPartyRepository creates a new MySQL Party repository.
func NewMySQLPartyRepository(db *sql.DB) *MySQLPartyRepository {
	return &MySQLPartyRepository{db: db}
}

// Create inserts a new Party into the MySQL database using BINARY(16) for UUIDs.
// Returns ErrPartyAlreadyExists if the party name is already taken.
func (m *MySQLPartyRepository) Create(ctx context.Context, party *partyDomain.Party) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO parties (id, name, domain, api_secret_hash, wrapped_sso_key, wrapped_privacy_key, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := party.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal party id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		party.Name,
		party.Domain,
		party.APISecretHash,
		party.WrappedSSOKey,
		party.WrappedPrivacyKey,
		party.IsActive,
		party.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return partyDomain.ErrPartyAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create party")
	}
	return nil
}

// Get retrieves a Party by ID from the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLPartyRepository) Get(ctx context.Context, partyID uuid.UUID) (*partyDomain.Party, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, domain, api_secret_hash, wrapped_sso_key, wrapped_privacy_key, is_active, created_at, deactivated_at
			  FROM parties WHERE id = ?`

	id, err := partyID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal party id")
	}

	return m.scanParty(querier.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a Party by its unique name from the MySQL database.
func (m *MySQLPartyRepository) GetByName(ctx context.Context, name string) (*partyDomain.Party, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, domain, api_secret_hash, wrapped_sso_key, wrapped_privacy_key, is_active, created_at, deactivated_at
			  FROM parties WHERE name = ?`

	return m.scanParty(querier.QueryRowContext(ctx, query, name))
}

// Update modifies an existing Party in the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLPartyRepository) Update(ctx context.Context, party *partyDomain.Party) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE parties
			  SET domain = ?,
			  	  api_secret_hash = ?,
				  wrapped_sso_key = ?,
				  wrapped_privacy_key = ?,
				  is_active = ?,
				  deactivated_at = ?
			  WHERE id = ?`

	id, err := party.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal party id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		party.Domain,
		party.APISecretHash,
		party.WrappedSSOKey,
		party.WrappedPrivacyKey,
		party.IsActive,
		party.DeactivatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update party")
	}

	return nil
}

// scanParty scans a party row, converting the BINARY(16) id back to a UUID.
func (m *MySQLPartyRepository) scanParty(row *sql.Row) (*partyDomain.Party, error) {
	var party partyDomain.Party
	var idBytes []byte

	err := row.Scan(
		&idBytes,
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

	if err := party.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal party id")
	}

	return &party, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
