package usecase

import (
	"context"
	"time"

	apperrors "github.com/allisson/ssotoken/internal/errors"
	"github.com/allisson/ssotoken/internal/metrics"
	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issue operations.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	partyName string,
	attrs tokenDomain.AttributeMap,
) (string, string, error) {
	start := time.Now()
	token, tokenID, err := t.next.Issue(ctx, partyName, attrs)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_issue", status)
	t.metrics.RecordDuration(ctx, "token", "token_issue", time.Since(start), status)

	return token, tokenID, err
}

// Redeem records metrics for token redeem operations. The status label
// carries the failure reason so decode problems can be told apart on a
// dashboard.
func (t *tokenUseCaseWithMetrics) Redeem(
	ctx context.Context,
	partyName string,
	token string,
) (tokenDomain.AttributeMap, error) {
	start := time.Now()
	attrs, err := t.next.Redeem(ctx, partyName, token)

	status := redeemStatus(err)

	t.metrics.RecordOperation(ctx, "token", "token_redeem", status)
	t.metrics.RecordDuration(ctx, "token", "token_redeem", time.Since(start), status)

	return attrs, err
}

// EncryptAttribute records metrics for field encryption operations.
func (t *tokenUseCaseWithMetrics) EncryptAttribute(
	ctx context.Context,
	partyName string,
	value string,
) (string, error) {
	start := time.Now()
	encrypted, err := t.next.EncryptAttribute(ctx, partyName, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_field_encrypt", status)
	t.metrics.RecordDuration(ctx, "token", "token_field_encrypt", time.Since(start), status)

	return encrypted, err
}

// redeemStatus maps a redeem outcome to the metric status label.
func redeemStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.Is(err, tokenDomain.ErrSignatureMismatch):
		return "signature_mismatch"
	case apperrors.Is(err, tokenDomain.ErrTokenExpired):
		return "expired"
	case apperrors.Is(err, tokenDomain.ErrInvalidPadding):
		return "invalid_padding"
	case apperrors.Is(err, tokenDomain.ErrMalformedCanonicalString):
		return "malformed_canonical"
	case apperrors.Is(err, tokenDomain.ErrMissingSignatureField):
		return "missing_signature"
	case apperrors.Is(err, tokenDomain.ErrInvalidTokenFormat):
		return "invalid_format"
	case apperrors.Is(err, partyDomain.ErrPartyNotFound):
		return "party_not_found"
	default:
		return "error"
	}
}
