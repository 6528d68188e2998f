// Package http provides HTTP handlers for token issue and decode operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ssotoken/internal/httputil"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
	"github.com/allisson/ssotoken/internal/token/http/dto"
	tokenUseCase "github.com/allisson/ssotoken/internal/token/usecase"
	customValidation "github.com/allisson/ssotoken/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
// It coordinates token issue and decode with the TokenUseCase.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	useCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: useCase,
		logger:       logger,
	}
}

// IssueHandler issues a new SSO token for the party named in the path.
// POST /v1/sso/parties/:name/tokens - Requires party API authentication.
// Returns 201 Created with the encoded token and its token id.
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	token, tokenID, err := h.tokenUseCase.Issue(
		c.Request.Context(),
		c.Param("name"),
		tokenDomain.AttributeMap(req.Attributes),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.IssueTokenResponse{
		Token:   token,
		TokenID: tokenID,
	}

	c.JSON(http.StatusCreated, response)
}

// EncryptFieldHandler encrypts a single attribute value under the privacy
// key of the party named in the path.
// POST /v1/sso/parties/:name/fields/encrypt - Requires party API authentication.
// Returns 200 OK with the encrypted value.
func (h *TokenHandler) EncryptFieldHandler(c *gin.Context) {
	var req dto.EncryptFieldRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	encrypted, err := h.tokenUseCase.EncryptAttribute(c.Request.Context(), c.Param("name"), req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.EncryptFieldResponse{
		Value: encrypted,
	}

	c.JSON(http.StatusOK, response)
}

// DecodeHandler decodes and verifies a token for the party named in the path.
// POST /v1/sso/parties/:name/tokens/decode - Requires party API authentication.
// Returns 200 OK with the verified attributes.
func (h *TokenHandler) DecodeHandler(c *gin.Context) {
	var req dto.DecodeTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	attrs, err := h.tokenUseCase.Redeem(c.Request.Context(), c.Param("name"), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.DecodeTokenResponse{
		Attributes: attrs,
	}

	c.JSON(http.StatusOK, response)
}
