package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payline-connector/config"
	httpHandler "payline-connector/internal/adapter/http/handler"
	"payline-connector/internal/adapter/soap"
	pgStorage "payline-connector/internal/adapter/storage/postgres"
	redisStorage "payline-connector/internal/adapter/storage/redis"
	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"
	"payline-connector/internal/normalize"
	"payline-connector/internal/service"
	"payline-connector/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("environment", cfg.Payline.Environment).
		Int("port", cfg.Server.Port).
		Msg("Starting Payline connector")

	ctx := context.Background()

	if cfg.Telemetry.Endpoint != "" {
		tp, err := initTracer(ctx, cfg.Telemetry)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracing")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
		log.Info().Str("endpoint", cfg.Telemetry.Endpoint).Msg("Tracing enabled")
	}

	var healthCheckers []ports.HealthChecker

	// Audit trail is persisted only when PostgreSQL is enabled
	var auditRepo ports.AuditRepository
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare audit schema")
		}
		auditRepo = pgStorage.NewAuditRepository(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected")
	}

	// Redis backs idempotent replays and rate limiting
	routerDeps := httpHandler.RouterDeps{
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		Logger:         log,
		ServiceName:    cfg.Telemetry.ServiceName,
	}
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		routerDeps.IdempotencyCache = redisStorage.NewIdempotencyCache(rdb)
		routerDeps.RateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	loc, err := cfg.Payline.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid timezone")
	}
	currency, err := domain.ParseCurrency(cfg.Payline.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid default currency")
	}
	env := domain.ParseEnvironment(cfg.Payline.Environment)

	// Gateway stack: SOAP factory -> dispatcher -> facade
	norm := normalize.New(loc)
	factory := soap.NewFactory(soap.FactoryConfig{
		EndpointPrefix: cfg.Payline.EndpointPrefix,
		WSDLPrefixes: map[domain.Environment]string{
			domain.EnvironmentHomologation: cfg.Payline.WSDLPrefixHomologation,
			domain.EnvironmentProduction:   cfg.Payline.WSDLPrefixProduction,
		},
		Timeout: cfg.Payline.Timeout,
	}, log)
	builder := service.NewGatewayBuilder(factory, service.GatewayConfig{
		DefaultCurrency: currency,
		ReferencePrefix: cfg.Payline.ReferencePrefix,
		Version:         cfg.Payline.Version,
	}, log,
		service.WithNormalizer(norm),
		service.WithAuditService(service.NewAuditService(auditRepo, log)),
	)

	// Configured credentials are optional; events may carry their own
	if creds, err := domain.NewCredentials(cfg.Payline.MerchantID, cfg.Payline.AccessKey, cfg.Payline.ContractID, env); err == nil {
		healthCheckers = append(healthCheckers, soap.NewHealthCheck(factory, creds))
	} else {
		log.Warn().Err(err).Msg("No default gateway credentials, events must provide them")
	}

	routerDeps.Events = httpHandler.NewEventHandler(httpHandler.EventDefaults{
		MerchantID:     cfg.Payline.MerchantID,
		AccessKey:      cfg.Payline.AccessKey,
		ContractNumber: cfg.Payline.ContractID,
		Environment:    env,
		Currency:       currency,
	}, builder.Build, norm.ParseTime, log)
	routerDeps.HealthCheckers = healthCheckers

	if cfg.JWT.Secret != "" {
		routerDeps.TokenSvc = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	} else {
		log.Warn().Msg("JWT secret not set, function routes are public")
	}

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	router := httpHandler.SetupRouter(routerDeps)

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func initTracer(ctx context.Context, cfg config.TelemetryConfig) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}
