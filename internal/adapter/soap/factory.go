// Package soap is the gateway transport: it discovers operations from each
// service's WSDL and posts document/literal envelopes with basic auth.
package soap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"
	"payline-connector/pkg/apperror"
	"payline-connector/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// FactoryConfig locates the services and their definitions.
type FactoryConfig struct {
	// EndpointPrefix overrides the per-environment service root.
	EndpointPrefix string
	// WSDLPrefixes are URLs or directories holding the definitions, per
	// environment. Without one each definition is fetched from its endpoint
	// with "?wsdl".
	WSDLPrefixes    map[domain.Environment]string
	WSDLNames       map[domain.OperationGroup]string
	Timeout         time.Duration
	ObjectNamespace string
}

// Factory builds authenticated clients. Parsed definitions are shared
// between clients and cached per location.
type Factory struct {
	cfg     FactoryConfig
	fetcher *resty.Client
	log     zerolog.Logger

	mu   sync.Mutex
	defs map[string]*Definition
}

var _ ports.ClientFactory = (*Factory)(nil)

// NewFactory creates a client factory.
func NewFactory(cfg FactoryConfig, log zerolog.Logger) *Factory {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ObjectNamespace == "" {
		cfg.ObjectNamespace = domain.ObjectNamespace
	}
	if cfg.WSDLNames == nil {
		cfg.WSDLNames = domain.DefaultWSDLNames
	}

	return &Factory{
		cfg:     cfg,
		fetcher: resty.New().SetTimeout(cfg.Timeout),
		log:     logger.Component(log, "soap"),
		defs:    make(map[string]*Definition),
	}
}

// NewClient loads the group's definition and returns a client bound to creds.
func (f *Factory) NewClient(ctx context.Context, group domain.OperationGroup, creds domain.Credentials) (ports.SOAPClient, error) {
	endpoint, location, err := f.locate(group, creds.Environment())
	if err != nil {
		return nil, err
	}

	def, err := f.definition(ctx, location, creds)
	if err != nil {
		return nil, err
	}

	f.log.Debug().
		Str("group", string(group)).
		Str("endpoint", endpoint).
		Int("operations", len(def.operations)).
		Msg("soap client ready")

	return &Client{
		group:    group,
		endpoint: endpoint,
		def:      def,
		objectNS: f.cfg.ObjectNamespace,
		http: resty.New().
			SetTimeout(f.cfg.Timeout).
			SetBasicAuth(creds.MerchantID(), creds.AccessKey()),
		log: f.log.With().Str("group", string(group)).Logger(),
	}, nil
}

// Endpoint returns the URL the group's requests are posted to.
func (f *Factory) Endpoint(group domain.OperationGroup, env domain.Environment) (string, error) {
	endpoint, _, err := f.locate(group, env)
	return endpoint, err
}

// Probe fetches and parses a definition, bypassing the cache.
func (f *Factory) Probe(ctx context.Context, group domain.OperationGroup, creds domain.Credentials) error {
	_, location, err := f.locate(group, creds.Environment())
	if err != nil {
		return err
	}
	_, err = f.fetch(ctx, location, creds)
	return err
}

func (f *Factory) locate(group domain.OperationGroup, env domain.Environment) (endpoint, location string, err error) {
	name, ok := f.cfg.WSDLNames[group]
	if !ok || name == "" {
		return "", "", apperror.InternalError(fmt.Errorf("no service definition for group %q", group))
	}

	prefix := f.cfg.EndpointPrefix
	if prefix == "" {
		prefix = domain.DefaultEndpointPrefixes[env]
	}
	endpoint = prefix + strings.TrimSuffix(name, ".wsdl")

	if wsdlPrefix := f.cfg.WSDLPrefixes[env]; wsdlPrefix != "" {
		return endpoint, wsdlPrefix + name, nil
	}
	return endpoint, endpoint + "?wsdl", nil
}

func (f *Factory) definition(ctx context.Context, location string, creds domain.Credentials) (*Definition, error) {
	f.mu.Lock()
	def, ok := f.defs[location]
	f.mu.Unlock()
	if ok {
		return def, nil
	}

	def, err := f.fetch(ctx, location, creds)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.defs[location] = def
	f.mu.Unlock()
	return def, nil
}

func (f *Factory) fetch(ctx context.Context, location string, creds domain.Credentials) (*Definition, error) {
	var data []byte

	if isRemote(location) {
		resp, err := f.fetcher.R().
			SetContext(ctx).
			SetBasicAuth(creds.MerchantID(), creds.AccessKey()).
			Get(location)
		if err != nil {
			return nil, apperror.ErrTransport(fmt.Errorf("fetching %s: %w", location, err))
		}
		if resp.StatusCode() == http.StatusUnauthorized {
			return nil, apperror.ErrInvalidCredentials(fmt.Errorf("fetching %s: http %d", location, resp.StatusCode()))
		}
		if resp.IsError() {
			return nil, apperror.ErrTransport(fmt.Errorf("fetching %s: http %d", location, resp.StatusCode()))
		}
		data = resp.Body()
	} else {
		b, err := os.ReadFile(location)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("reading %s: %w", location, err))
		}
		data = b
	}

	def, err := ParseWSDL(data)
	if err != nil {
		return nil, apperror.ErrTransport(fmt.Errorf("%s: %w", location, err))
	}

	f.log.Info().Str("location", location).Int("operations", len(def.operations)).Msg("service definition loaded")
	return def, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
