package app

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	partyRepository "github.com/allisson/ssotoken/internal/party/repository"
	partyService "github.com/allisson/ssotoken/internal/party/service"
	partyUseCase "github.com/allisson/ssotoken/internal/party/usecase"
)

// SecretService returns the secret service for party API credentials.
func (c *Container) SecretService() partyService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = partyService.NewSecretService()
	})
	return c.secretService
}

// KMSService returns the KMS service.
func (c *Container) KMSService() partyService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = partyService.NewKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the secrets keeper opened for the configured master key URI.
func (c *Container) KMSKeeper() (*secrets.Keeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper()
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// KeyWrapper returns the key wrapper for party SSO secrets.
func (c *Container) KeyWrapper() (partyService.KeyWrapper, error) {
	var err error
	c.keyWrapperInit.Do(func() {
		c.keyWrapper, err = c.initKeyWrapper()
		if err != nil {
			c.initErrors["keyWrapper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyWrapper"]; exists {
		return nil, storedErr
	}
	return c.keyWrapper, nil
}

// PartyRepository returns the party repository based on database driver.
func (c *Container) PartyRepository() (partyUseCase.PartyRepository, error) {
	var err error
	c.partyRepositoryInit.Do(func() {
		c.partyRepository, err = c.initPartyRepository()
		if err != nil {
			c.initErrors["partyRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["partyRepository"]; exists {
		return nil, storedErr
	}
	return c.partyRepository, nil
}

// PartyUseCase returns the party use case.
func (c *Container) PartyUseCase() (partyUseCase.PartyUseCase, error) {
	var err error
	c.partyUseCaseInit.Do(func() {
		c.partyUseCase, err = c.initPartyUseCase()
		if err != nil {
			c.initErrors["partyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["partyUseCase"]; exists {
		return nil, storedErr
	}
	return c.partyUseCase, nil
}

// initKMSKeeper opens the secrets keeper for the configured master key URI.
func (c *Container) initKMSKeeper() (*secrets.Keeper, error) {
	if c.config.KMSKeyURI == "" {
		return nil, fmt.Errorf("KMS_KEY_URI is required")
	}
	c.Logger().Info("opening KMS keeper", "provider", c.config.KMSProvider)
	return c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
}

// initKeyWrapper creates the key wrapper using the KMS keeper.
func (c *Container) initKeyWrapper() (partyService.KeyWrapper, error) {
	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for key wrapper: %w", err)
	}
	return partyService.NewKMSKeyWrapper(keeper), nil
}

// initPartyRepository creates the party repository based on the database driver.
func (c *Container) initPartyRepository() (partyUseCase.PartyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for party repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return partyRepository.NewPostgreSQLPartyRepository(db), nil
	case "mysql":
		return partyRepository.NewMySQLPartyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPartyUseCase creates the party use case with all its dependencies.
func (c *Container) initPartyUseCase() (partyUseCase.PartyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for party use case: %w", err)
	}

	repository, err := c.PartyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get party repository for party use case: %w", err)
	}

	keyWrapper, err := c.KeyWrapper()
	if err != nil {
		return nil, fmt.Errorf("failed to get key wrapper for party use case: %w", err)
	}

	baseUseCase := partyUseCase.NewPartyUseCase(txManager, repository, c.SecretService(), keyWrapper)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for party use case: %w", err)
		}
		return partyUseCase.NewPartyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
