package service

import (
	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"

	"github.com/rs/zerolog"
)

// GatewayBuilder assembles a dispatcher and a facade for one credential set.
type GatewayBuilder struct {
	factory ports.ClientFactory
	cfg     GatewayConfig
	log     zerolog.Logger
	opts    []DispatcherOption
}

// NewGatewayBuilder creates a builder sharing factory and the dispatcher options
// between every gateway it builds.
func NewGatewayBuilder(factory ports.ClientFactory, cfg GatewayConfig, log zerolog.Logger, opts ...DispatcherOption) *GatewayBuilder {
	return &GatewayBuilder{factory: factory, cfg: cfg, log: log, opts: opts}
}

// Build returns a facade bound to creds. A zero currency keeps the configured default.
func (b *GatewayBuilder) Build(creds domain.Credentials, currency domain.Currency) ports.Gateway {
	cfg := b.cfg
	cfg.ContractNumber = creds.ContractNumber()
	if currency != 0 {
		cfg.DefaultCurrency = currency
	}

	log := b.log.With().Str("merchant_id", creds.MerchantID()).Logger()
	dispatcher := NewDispatcher(creds, b.factory, log, b.opts...)
	return NewGateway(dispatcher, cfg, log)
}
