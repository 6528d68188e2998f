package app

import (
	"fmt"

	tokenHTTP "github.com/allisson/ssotoken/internal/token/http"
	tokenService "github.com/allisson/ssotoken/internal/token/service"
	tokenUseCase "github.com/allisson/ssotoken/internal/token/usecase"
)

// TokenCodec returns the token codec service.
func (c *Container) TokenCodec() tokenService.TokenCodec {
	c.tokenCodecInit.Do(func() {
		deriver := tokenService.NewKeyDeriver()
		canonicalizer := tokenService.NewParamCanonicalizer()
		signer := tokenService.NewSigner(canonicalizer)
		c.tokenCodec = tokenService.NewTokenCodec(deriver, canonicalizer, signer)
	})
	return c.tokenCodec
}

// FieldCipher returns the attribute field cipher service.
func (c *Container) FieldCipher() tokenService.FieldCipher {
	c.fieldCipherInit.Do(func() {
		c.fieldCipher = tokenService.NewFieldCipher(tokenService.NewKeyDeriver())
	})
	return c.fieldCipher
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (tokenUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for token operations.
func (c *Container) TokenHandler() (*tokenHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (tokenUseCase.TokenUseCase, error) {
	partyProvider, err := c.PartyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get party use case for token use case: %w", err)
	}

	baseUseCase := tokenUseCase.NewTokenUseCase(
		partyProvider, c.TokenCodec(), c.FieldCipher(), c.config.TokenMaxAge)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return tokenUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler with all its dependencies.
func (c *Container) initTokenHandler() (*tokenHTTP.TokenHandler, error) {
	useCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return tokenHTTP.NewTokenHandler(useCase, c.Logger()), nil
}
