package database

import (
	"context"
	"database/sql"
)

// txKey is the context key under which WithTx stores the open transaction.
type txKey struct{}

// Querier is the query surface the party repositories execute against,
// satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a function inside a single database transaction.
// Repositories pick the transaction up from the context via GetTx, so
// multi-statement flows such as party deactivation read and write
// atomically without threading a *sql.Tx through their signatures.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// sqlTxManager implements TxManager on database/sql.
type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager for the given party store connection.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// WithTx begins a transaction, stores it in the context, and commits when
// fn returns nil. Any error from fn rolls the transaction back and is
// returned to the caller; a rollback failure takes precedence.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

// GetTx returns the transaction stored by WithTx, or the bare connection
// when the context carries none.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
