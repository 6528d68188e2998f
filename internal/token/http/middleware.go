package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/ssotoken/internal/errors"
	"github.com/allisson/ssotoken/internal/httputil"
	partyUseCase "github.com/allisson/ssotoken/internal/party/usecase"
)

// PartyAuthMiddleware authenticates party API credentials from the
// Authorization header.
//
// The middleware:
// 1. Extracts the Bearer credential from the Authorization header (case-insensitive)
// 2. Splits it into "<party-id>:<api-secret>"
// 3. Verifies the secret against the stored hash via partyUseCase.Authenticate
// 4. Rejects inactive parties and parties that don't match the :name route param
// 5. Stores the authenticated party in the request context for GetParty()
//
// Error handling:
//   - Missing/malformed Authorization header → 401 Unauthorized
//   - Unknown party id or wrong secret → 401 Unauthorized
//   - Inactive party → 403 Forbidden
//   - Party name does not match the route param → 403 Forbidden
func PartyAuthMiddleware(
	useCase partyUseCase.PartyUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		credential := authHeader[len(bearerPrefix):]
		partyIDStr, plainSecret, found := strings.Cut(credential, ":")
		if !found || partyIDStr == "" || plainSecret == "" {
			logger.Debug("authentication failed: malformed bearer credential")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		partyID, err := uuid.Parse(partyIDStr)
		if err != nil {
			logger.Debug("authentication failed: invalid party id")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		party, err := useCase.Authenticate(c.Request.Context(), partyID, plainSecret)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			// Unknown party ids are indistinguishable from bad secrets
			if apperrors.Is(err, apperrors.ErrNotFound) {
				err = apperrors.ErrUnauthorized
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Credentials only grant access to the party's own routes
		if party.Name != c.Param("name") {
			logger.Debug("authorization failed: party name mismatch",
				slog.String("party_id", party.ID.String()),
				slog.String("party_name", party.Name),
				slog.String("route_name", c.Param("name")))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		ctx := WithParty(c.Request.Context(), party)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("party_id", party.ID.String()),
			slog.String("party_name", party.Name))

		c.Next()
	}
}
