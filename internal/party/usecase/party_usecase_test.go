package usecase

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/ssotoken/internal/database/mocks"
	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
)

// mockSecretService is a mock implementation of SecretService for testing.
type mockSecretService struct {
	mock.Mock
}

func (m *mockSecretService) GenerateSecret() (plainSecret string, hashedSecret string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSecretService) HashSecret(plainSecret string) (hashedSecret string, error error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

func (m *mockSecretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	args := m.Called(plainSecret, hashedSecret)
	return args.Bool(0)
}

// mockKeyWrapper is a mock implementation of KeyWrapper for testing.
type mockKeyWrapper struct {
	mock.Mock
}

func (m *mockKeyWrapper) Wrap(ctx context.Context, ssoKey []byte) ([]byte, error) {
	args := m.Called(ctx, ssoKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKeyWrapper) Unwrap(ctx context.Context, blob []byte) ([]byte, error) {
	args := m.Called(ctx, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// mockPartyRepository is a mock implementation of PartyRepository for testing.
type mockPartyRepository struct {
	mock.Mock
}

func (m *mockPartyRepository) Create(ctx context.Context, party *partyDomain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *mockPartyRepository) Update(ctx context.Context, party *partyDomain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *mockPartyRepository) Get(ctx context.Context, partyID uuid.UUID) (*partyDomain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partyDomain.Party), args.Error(1)
}

func (m *mockPartyRepository) GetByName(ctx context.Context, name string) (*partyDomain.Party, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partyDomain.Party), args.Error(1)
}

func TestPartyUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateNewParty", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := &mockPartyRepository{}
		mockSecrets := &mockSecretService{}
		mockWrapper := &mockKeyWrapper{}

		plainSecret := "test-plain-secret-abc123"                  //nolint:gosec // test fixture, not a real credential
		hashedSecret := "$argon2id$v=19$m=65536,t=3,p=4$test-hash" //nolint:gosec // test fixture, not a real credential
		createInput := &partyDomain.CreatePartyInput{
			Name:      "acme",
			Domain:    "acme.example.com",
			SSOKeyHex: strings.Repeat("ab", 32),
			IsActive:  true,
		}

		mockWrapper.On("Wrap", ctx, mock.Anything).
			Return([]byte("wrapped-blob"), nil).
			Once()
		mockSecrets.On("GenerateSecret").
			Return(plainSecret, hashedSecret, nil).
			Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(party *partyDomain.Party) bool {
			return party.Name == createInput.Name &&
				party.Domain == createInput.Domain &&
				party.APISecretHash == hashedSecret &&
				string(party.WrappedSSOKey) == "wrapped-blob" &&
				party.IsActive &&
				party.ID != uuid.Nil
		})).Return(nil).Once()

		useCase := NewPartyUseCase(mockTxManager, mockRepo, mockSecrets, mockWrapper)
		output, err := useCase.Create(ctx, createInput)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, output.ID)
		assert.Equal(t, plainSecret, output.PlainAPISecret)
		mockRepo.AssertExpectations(t)
		mockSecrets.AssertExpectations(t)
		mockWrapper.AssertExpectations(t)
	})

	t.Run("Error_InvalidSSOKey", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := &mockPartyRepository{}
		mockSecrets := &mockSecretService{}
		mockWrapper := &mockKeyWrapper{}

		useCase := NewPartyUseCase(mockTxManager, mockRepo, mockSecrets, mockWrapper)
		_, err := useCase.Create(ctx, &partyDomain.CreatePartyInput{
			Name:      "acme",
			Domain:    "acme.example.com",
			SSOKeyHex: "not-hex",
		})

		assert.ErrorIs(t, err, partyDomain.ErrInvalidSSOKey)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := &mockPartyRepository{}
		mockSecrets := &mockSecretService{}
		mockWrapper := &mockKeyWrapper{}

		mockWrapper.On("Wrap", ctx, mock.Anything).Return([]byte("wrapped"), nil).Once()
		mockSecrets.On("GenerateSecret").Return("plain", "hash", nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(partyDomain.ErrPartyAlreadyExists).Once()

		useCase := NewPartyUseCase(mockTxManager, mockRepo, mockSecrets, mockWrapper)
		_, err := useCase.Create(ctx, &partyDomain.CreatePartyInput{
			Name:      "acme",
			Domain:    "acme.example.com",
			SSOKeyHex: strings.Repeat("ab", 16),
			IsActive:  true,
		})

		assert.ErrorIs(t, err, partyDomain.ErrPartyAlreadyExists)
	})

	t.Run("Success_WithPrivacyKey", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := &mockPartyRepository{}
		mockSecrets := &mockSecretService{}
		mockWrapper := &mockKeyWrapper{}

		ssoKey := bytes.Repeat([]byte{0xab}, 32)
		privacyKey := bytes.Repeat([]byte{0xcd}, 32)

		mockWrapper.On("Wrap", ctx, ssoKey).Return([]byte("wrapped-sso"), nil).Once()
		mockWrapper.On("Wrap", ctx, privacyKey).Return([]byte("wrapped-privacy"), nil).Once()
		mockSecrets.On("GenerateSecret").Return("plain", "hash", nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(party *partyDomain.Party) bool {
			return string(party.WrappedSSOKey) == "wrapped-sso" &&
				string(party.WrappedPrivacyKey) == "wrapped-privacy"
		})).Return(nil).Once()

		useCase := NewPartyUseCase(mockTxManager, mockRepo, mockSecrets, mockWrapper)
		_, err := useCase.Create(ctx, &partyDomain.CreatePartyInput{
			Name:          "acme",
			Domain:        "acme.example.com",
			SSOKeyHex:     strings.Repeat("ab", 32),
			PrivacyKeyHex: strings.Repeat("cd", 32),
			IsActive:      true,
		})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockWrapper.AssertExpectations(t)
	})

	t.Run("Error_InvalidPrivacyKey", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := &mockPartyRepository{}
		mockWrapper := &mockKeyWrapper{}

		mockWrapper.On("Wrap", ctx, mock.Anything).Return([]byte("wrapped"), nil).Once()

		useCase := NewPartyUseCase(mockTxManager, mockRepo, &mockSecretService{}, mockWrapper)
		_, err := useCase.Create(ctx, &partyDomain.CreatePartyInput{
			Name:          "acme",
			Domain:        "acme.example.com",
			SSOKeyHex:     strings.Repeat("ab", 32),
			PrivacyKeyHex: "not-hex",
			IsActive:      true,
		})

		assert.ErrorIs(t, err, partyDomain.ErrInvalidPrivacyKey)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestPartyUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	partyID := uuid.Must(uuid.NewV7())

	newUseCase := func(party *partyDomain.Party, secretMatches bool) PartyUseCase {
		mockRepo := &mockPartyRepository{}
		mockSecrets := &mockSecretService{}
		mockRepo.On("Get", ctx, partyID).Return(party, nil)
		mockSecrets.On("CompareSecret", mock.Anything, mock.Anything).Return(secretMatches)
		return NewPartyUseCase(nil, mockRepo, mockSecrets, &mockKeyWrapper{})
	}

	t.Run("Success", func(t *testing.T) {
		party := &partyDomain.Party{ID: partyID, Name: "acme", IsActive: true}
		got, err := newUseCase(party, true).Authenticate(ctx, partyID, "secret")
		require.NoError(t, err)
		assert.Equal(t, partyID, got.ID)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		party := &partyDomain.Party{ID: partyID, Name: "acme", IsActive: true}
		_, err := newUseCase(party, false).Authenticate(ctx, partyID, "wrong")
		assert.ErrorIs(t, err, partyDomain.ErrInvalidAPISecret)
	})

	t.Run("Error_InactiveParty", func(t *testing.T) {
		party := &partyDomain.Party{ID: partyID, Name: "acme", IsActive: false}
		_, err := newUseCase(party, true).Authenticate(ctx, partyID, "secret")
		assert.ErrorIs(t, err, partyDomain.ErrPartyInactive)
	})

	t.Run("Error_PartyNotFound", func(t *testing.T) {
		mockRepo := &mockPartyRepository{}
		mockRepo.On("Get", ctx, partyID).Return(nil, partyDomain.ErrPartyNotFound)
		useCase := NewPartyUseCase(nil, mockRepo, &mockSecretService{}, &mockKeyWrapper{})

		_, err := useCase.Authenticate(ctx, partyID, "secret")
		assert.ErrorIs(t, err, partyDomain.ErrPartyNotFound)
	})
}

func TestPartyUseCase_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		party := &partyDomain.Party{ID: uuid.Must(uuid.NewV7()), Name: "acme", IsActive: true}
		mockRepo := &mockPartyRepository{}
		mockRepo.On("GetByName", ctx, "acme").Return(party, nil)

		useCase := NewPartyUseCase(nil, mockRepo, &mockSecretService{}, &mockKeyWrapper{})
		got, err := useCase.GetByName(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, party.ID, got.ID)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mockPartyRepository{}
		mockRepo.On("GetByName", ctx, "missing").Return(nil, partyDomain.ErrPartyNotFound)

		useCase := NewPartyUseCase(nil, mockRepo, &mockSecretService{}, &mockKeyWrapper{})
		_, err := useCase.GetByName(ctx, "missing")
		assert.ErrorIs(t, err, partyDomain.ErrPartyNotFound)
	})

	t.Run("ConcurrentLookupsShareResult", func(t *testing.T) {
		party := &partyDomain.Party{ID: uuid.Must(uuid.NewV7()), Name: "acme", IsActive: true}
		mockRepo := &mockPartyRepository{}
		mockRepo.On("GetByName", ctx, "acme").Return(party, nil)

		useCase := NewPartyUseCase(nil, mockRepo, &mockSecretService{}, &mockKeyWrapper{})

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := useCase.GetByName(ctx, "acme")
				assert.NoError(t, err)
				assert.Equal(t, party.ID, got.ID)
			}()
		}
		wg.Wait()
	})
}

func TestPartyUseCase_SSOKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		party := &partyDomain.Party{
			ID:            uuid.Must(uuid.NewV7()),
			IsActive:      true,
			WrappedSSOKey: []byte("wrapped-blob"),
		}
		mockWrapper := &mockKeyWrapper{}
		mockWrapper.On("Unwrap", ctx, party.WrappedSSOKey).
			Return([]byte("plain-sso-key-32-bytes-long....."), nil).
			Once()

		useCase := NewPartyUseCase(nil, &mockPartyRepository{}, &mockSecretService{}, mockWrapper)
		key, err := useCase.SSOKey(ctx, party)
		require.NoError(t, err)
		assert.Equal(t, []byte("plain-sso-key-32-bytes-long....."), key)
		mockWrapper.AssertExpectations(t)
	})

	t.Run("Error_InactiveParty", func(t *testing.T) {
		party := &partyDomain.Party{ID: uuid.Must(uuid.NewV7()), IsActive: false}
		useCase := NewPartyUseCase(nil, &mockPartyRepository{}, &mockSecretService{}, &mockKeyWrapper{})

		_, err := useCase.SSOKey(ctx, party)
		assert.ErrorIs(t, err, partyDomain.ErrPartyInactive)
	})
}

func TestPartyUseCase_PrivacyKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		party := &partyDomain.Party{
			ID:                uuid.Must(uuid.NewV7()),
			IsActive:          true,
			WrappedPrivacyKey: []byte("wrapped-privacy-blob"),
		}
		mockWrapper := &mockKeyWrapper{}
		mockWrapper.On("Unwrap", ctx, party.WrappedPrivacyKey).
			Return([]byte("plain-privacy-key-32-bytes-long."), nil).
			Once()

		useCase := NewPartyUseCase(nil, &mockPartyRepository{}, &mockSecretService{}, mockWrapper)
		key, err := useCase.PrivacyKey(ctx, party)
		require.NoError(t, err)
		assert.Equal(t, []byte("plain-privacy-key-32-bytes-long."), key)
		mockWrapper.AssertExpectations(t)
	})

	t.Run("Error_NoPrivacyKey", func(t *testing.T) {
		party := &partyDomain.Party{ID: uuid.Must(uuid.NewV7()), IsActive: true}
		useCase := NewPartyUseCase(nil, &mockPartyRepository{}, &mockSecretService{}, &mockKeyWrapper{})

		_, err := useCase.PrivacyKey(ctx, party)
		assert.ErrorIs(t, err, partyDomain.ErrNoPrivacyKey)
	})

	t.Run("Error_InactiveParty", func(t *testing.T) {
		party := &partyDomain.Party{
			ID:                uuid.Must(uuid.NewV7()),
			IsActive:          false,
			WrappedPrivacyKey: []byte("wrapped-privacy-blob"),
		}
		useCase := NewPartyUseCase(nil, &mockPartyRepository{}, &mockSecretService{}, &mockKeyWrapper{})

		_, err := useCase.PrivacyKey(ctx, party)
		assert.ErrorIs(t, err, partyDomain.ErrPartyInactive)
	})
}

func TestPartyUseCase_Deactivate(t *testing.T) {
	ctx := context.Background()
	partyID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := &mockPartyRepository{}
		party := &partyDomain.Party{ID: partyID, Name: "acme", IsActive: true}

		mockRepo.On("Get", ctx, partyID).Return(party, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(p *partyDomain.Party) bool {
			return !p.IsActive && p.DeactivatedAt != nil
		})).Return(nil).Once()

		useCase := NewPartyUseCase(mockTxManager, mockRepo, &mockSecretService{}, &mockKeyWrapper{})
		assert.NoError(t, useCase.Deactivate(ctx, partyID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := &mockPartyRepository{}
		mockRepo.On("Get", ctx, partyID).Return(nil, partyDomain.ErrPartyNotFound).Once()

		useCase := NewPartyUseCase(mockTxManager, mockRepo, &mockSecretService{}, &mockKeyWrapper{})
		err := useCase.Deactivate(ctx, partyID)
		assert.ErrorIs(t, err, partyDomain.ErrPartyNotFound)
	})
}
