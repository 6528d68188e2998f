// Package mocks provides test doubles for database interfaces.
package mocks

import (
	"context"
	"testing"
)

// MockTxManager is a TxManager test double that runs the function directly
// without opening a real transaction.
type MockTxManager struct{}

// NewMockTxManager creates a new MockTxManager.
func NewMockTxManager(t *testing.T) *MockTxManager {
	t.Helper()
	return &MockTxManager{}
}

// WithTx executes the function with the given context.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
