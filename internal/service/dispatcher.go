package service

import (
	"context"
	"sync"
	"time"

	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"
	"payline-connector/internal/normalize"
	"payline-connector/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "payline-connector/dispatcher"

// Dispatcher owns one client per operation group and routes each action to
// the first group whose definition declares it.
type Dispatcher struct {
	creds      domain.Credentials
	factory    ports.ClientFactory
	normalizer *normalize.Normalizer
	audit      ports.AuditService
	tracer     trace.Tracer
	log        zerolog.Logger

	mu      sync.Mutex
	clients map[domain.OperationGroup]ports.SOAPClient
}

var _ ports.Dispatcher = (*Dispatcher)(nil)

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithNormalizer sets the request normalizer. The default renders dates in time.Local.
func WithNormalizer(n *normalize.Normalizer) DispatcherOption {
	return func(d *Dispatcher) { d.normalizer = n }
}

// WithAuditService reports every dispatched action to svc.
func WithAuditService(svc ports.AuditService) DispatcherOption {
	return func(d *Dispatcher) { d.audit = svc }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) DispatcherOption {
	return func(d *Dispatcher) { d.tracer = t }
}

// NewDispatcher creates a dispatcher for creds. Clients are created on first use.
func NewDispatcher(creds domain.Credentials, factory ports.ClientFactory, log zerolog.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		creds:   creds,
		factory: factory,
		log:     log,
		clients: make(map[domain.OperationGroup]ports.SOAPClient, len(domain.OperationGroups)),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.normalizer == nil {
		d.normalizer = normalize.New(nil)
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(tracerName)
	}
	return d
}

// RunAction normalizes args, calls action on the client exposing it and
// checks the result code of the response.
func (d *Dispatcher) RunAction(ctx context.Context, action string, args domain.Fields) (domain.Response, error) {
	ctx, span := d.tracer.Start(ctx, "payline."+action,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("payline.action", action),
			attribute.String("payline.merchant_id", d.creds.MerchantID()),
			attribute.String("payline.environment", string(d.creds.Environment())),
		),
	)
	defer span.End()

	start := time.Now()
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		MerchantID: d.creds.MerchantID(),
		Action:     action,
		CreatedAt:  start,
	}

	resp, err := d.run(ctx, action, args, entry)

	entry.Duration = time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperror.HasCode(err, apperror.CodeGatewayRejected) {
			entry.Status = domain.AuditStatusRejected
		} else {
			entry.Status = domain.AuditStatusFailed
		}
		d.log.Warn().Err(err).
			Str("action", action).
			Str("result_code", entry.ResultCode).
			Dur("duration", entry.Duration).
			Msg("gateway action failed")
	} else {
		entry.Status = domain.AuditStatusSuccess
		span.SetStatus(codes.Ok, "")
		d.log.Info().
			Str("action", action).
			Str("group", string(entry.Group)).
			Str("result_code", entry.ResultCode).
			Str("transaction_id", entry.TransactionID).
			Dur("duration", entry.Duration).
			Msg("gateway action completed")
	}
	span.SetAttributes(attribute.String("payline.result_code", entry.ResultCode))

	if d.audit != nil {
		d.audit.Log(ctx, entry)
	}
	return resp, err
}

func (d *Dispatcher) run(ctx context.Context, action string, args domain.Fields, entry *domain.AuditLog) (domain.Response, error) {
	client, err := d.resolve(ctx, action)
	if err != nil {
		return nil, err
	}
	entry.Group = client.Group()
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("payline.group", string(entry.Group)))

	resp, err := client.Call(ctx, action, d.normalizer.Fields(args))
	if err != nil {
		return nil, err
	}

	entry.ResultCode = resp.ResultCode()
	entry.TransactionID = resp.String("transaction", "id")
	if !domain.IsSuccessCode(entry.ResultCode) {
		return nil, apperror.ErrGatewayRejected(entry.ResultCode, resp.ResultMessage(), resp)
	}
	return resp, nil
}

func (d *Dispatcher) resolve(ctx context.Context, action string) (ports.SOAPClient, error) {
	if err := d.initialize(ctx); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, group := range domain.OperationGroups {
		if client, ok := d.clients[group]; ok && client.Supports(action) {
			return client, nil
		}
	}
	return nil, apperror.ErrUnresolvableAction(action)
}

// initialize creates the missing clients concurrently. A failed group is
// retried on the next call.
func (d *Dispatcher) initialize(ctx context.Context) error {
	missing := d.missingGroups()
	if len(missing) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, group := range missing {
		g.Go(func() error {
			client, err := d.factory.NewClient(gctx, group, d.creds)
			if err != nil {
				return err
			}
			d.mu.Lock()
			if _, ok := d.clients[group]; !ok {
				d.clients[group] = client
			}
			d.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func (d *Dispatcher) missingGroups() []domain.OperationGroup {
	d.mu.Lock()
	defer d.mu.Unlock()

	var missing []domain.OperationGroup
	for _, group := range domain.OperationGroups {
		if _, ok := d.clients[group]; !ok {
			missing = append(missing, group)
		}
	}
	return missing
}
