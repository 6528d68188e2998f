// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// MockTokenUseCase is a mock implementation of TokenUseCase for testing.
type MockTokenUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenUseCase.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	partyName string,
	attrs tokenDomain.AttributeMap,
) (string, string, error) {
	args := m.Called(ctx, partyName, attrs)
	return args.String(0), args.String(1), args.Error(2)
}

// Redeem mocks the Redeem method of TokenUseCase.
func (m *MockTokenUseCase) Redeem(
	ctx context.Context,
	partyName string,
	token string,
) (tokenDomain.AttributeMap, error) {
	args := m.Called(ctx, partyName, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(tokenDomain.AttributeMap), args.Error(1)
}

// EncryptAttribute mocks the EncryptAttribute method of TokenUseCase.
func (m *MockTokenUseCase) EncryptAttribute(
	ctx context.Context,
	partyName string,
	value string,
) (string, error) {
	args := m.Called(ctx, partyName, value)
	return args.String(0), args.Error(1)
}

// MockPartyAuthenticator is a mock implementation of the party use case
// surface needed by the authentication middleware.
type MockPartyAuthenticator struct {
	mock.Mock
}

// Create mocks the Create method of PartyUseCase.
func (m *MockPartyAuthenticator) Create(
	ctx context.Context,
	input *partyDomain.CreatePartyInput,
) (*partyDomain.CreatePartyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partyDomain.CreatePartyOutput), args.Error(1)
}

// Get mocks the Get method of PartyUseCase.
func (m *MockPartyAuthenticator) Get(ctx context.Context, partyID uuid.UUID) (*partyDomain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partyDomain.Party), args.Error(1)
}

// GetByName mocks the GetByName method of PartyUseCase.
func (m *MockPartyAuthenticator) GetByName(ctx context.Context, name string) (*partyDomain.Party, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partyDomain.Party), args.Error(1)
}

// Authenticate mocks the Authenticate method of PartyUseCase.
func (m *MockPartyAuthenticator) Authenticate(
	ctx context.Context,
	partyID uuid.UUID,
	plainSecret string,
) (*partyDomain.Party, error) {
	args := m.Called(ctx, partyID, plainSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partyDomain.Party), args.Error(1)
}

// SSOKey mocks the SSOKey method of PartyUseCase.
func (m *MockPartyAuthenticator) SSOKey(ctx context.Context, party *partyDomain.Party) ([]byte, error) {
	args := m.Called(ctx, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// PrivacyKey mocks the PrivacyKey method of PartyUseCase.
func (m *MockPartyAuthenticator) PrivacyKey(ctx context.Context, party *partyDomain.Party) ([]byte, error) {
	args := m.Called(ctx, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Deactivate mocks the Deactivate method of PartyUseCase.
func (m *MockPartyAuthenticator) Deactivate(ctx context.Context, partyID uuid.UUID) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}
