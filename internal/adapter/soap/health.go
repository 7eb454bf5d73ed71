package soap

import (
	"context"

	"payline-connector/internal/core/domain"
)

// HealthCheck implements ports.HealthChecker for the gateway by fetching
// the direct payment definition.
type HealthCheck struct {
	factory *Factory
	creds   domain.Credentials
}

// NewHealthCheck creates a gateway health checker.
func NewHealthCheck(factory *Factory, creds domain.Credentials) *HealthCheck {
	return &HealthCheck{factory: factory, creds: creds}
}

// Ping checks that the gateway serves its definition for creds.
func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.factory.Probe(ctx, domain.GroupDirectPayment, h.creds)
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "payline"
}
