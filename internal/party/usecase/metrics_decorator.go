package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ssotoken/internal/metrics"
	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
)

// partyUseCaseWithMetrics decorates PartyUseCase with metrics instrumentation.
type partyUseCaseWithMetrics struct {
	next    PartyUseCase
	metrics metrics.BusinessMetrics
}

// NewPartyUseCaseWithMetrics wraps a PartyUseCase with metrics recording.
func NewPartyUseCaseWithMetrics(useCase PartyUseCase, m metrics.BusinessMetrics) PartyUseCase {
	return &partyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for party registration operations.
func (p *partyUseCaseWithMetrics) Create(
	ctx context.Context,
	createPartyInput *partyDomain.CreatePartyInput,
) (*partyDomain.CreatePartyOutput, error) {
	start := time.Now()
	output, err := p.next.Create(ctx, createPartyInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "party", "party_create", status)
	p.metrics.RecordDuration(ctx, "party", "party_create", time.Since(start), status)

	return output, err
}

// Get records metrics for party retrieval operations.
func (p *partyUseCaseWithMetrics) Get(
	ctx context.Context,
	partyID uuid.UUID,
) (*partyDomain.Party, error) {
	start := time.Now()
	party, err := p.next.Get(ctx, partyID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "party", "party_get", status)
	p.metrics.RecordDuration(ctx, "party", "party_get", time.Since(start), status)

	return party, err
}

// GetByName records metrics for party lookup operations.
func (p *partyUseCaseWithMetrics) GetByName(
	ctx context.Context,
	name string,
) (*partyDomain.Party, error) {
	start := time.Now()
	party, err := p.next.GetByName(ctx, name)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "party", "party_get_by_name", status)
	p.metrics.RecordDuration(ctx, "party", "party_get_by_name", time.Since(start), status)

	return party, err
}

// Authenticate records metrics for party authentication operations.
func (p *partyUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	partyID uuid.UUID,
	plainSecret string,
) (*partyDomain.Party, error) {
	start := time.Now()
	party, err := p.next.Authenticate(ctx, partyID, plainSecret)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "party", "party_authenticate", status)
	p.metrics.RecordDuration(ctx, "party", "party_authenticate", time.Since(start), status)

	return party, err
}

// SSOKey records metrics for SSO key unwrap operations.
func (p *partyUseCaseWithMetrics) SSOKey(
	ctx context.Context,
	party *partyDomain.Party,
) ([]byte, error) {
	start := time.Now()
	key, err := p.next.SSOKey(ctx, party)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "party", "party_sso_key", status)
	p.metrics.RecordDuration(ctx, "party", "party_sso_key", time.Since(start), status)

	return key, err
}

// PrivacyKey records metrics for privacy key unwrap operations.
func (p *partyUseCaseWithMetrics) PrivacyKey(
	ctx context.Context,
	party *partyDomain.Party,
) ([]byte, error) {
	start := time.Now()
	key, err := p.next.PrivacyKey(ctx, party)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "party", "party_privacy_key", status)
	p.metrics.RecordDuration(ctx, "party", "party_privacy_key", time.Since(start), status)

	return key, err
}

// Deactivate records metrics for party deactivation operations.
func (p *partyUseCaseWithMetrics) Deactivate(ctx context.Context, partyID uuid.UUID) error {
	start := time.Now()
	err := p.next.Deactivate(ctx, partyID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "party", "party_deactivate", status)
	p.metrics.RecordDuration(ctx, "party", "party_deactivate", time.Since(start), status)

	return err
}
