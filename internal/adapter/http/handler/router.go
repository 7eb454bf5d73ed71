package handler

import (
	"time"

	"payline-connector/internal/adapter/http/middleware"
	"payline-connector/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Events           *EventHandler
	TokenSvc         ports.TokenService     // nil = function routes are public
	IdempotencyCache ports.IdempotencyCache // nil = no replay protection
	IdempotencyTTL   time.Duration
	RateLimitStore   middleware.RateLimitStore // nil = rate limiting disabled
	HealthCheckers   []ports.HealthChecker
	Logger           zerolog.Logger
	ServiceName      string
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	serviceName := deps.ServiceName
	if serviceName == "" {
		serviceName = "payline-connector"
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	var auth []gin.HandlerFunc
	if deps.TokenSvc != nil {
		auth = append(auth, middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	}

	idempotent := func(c *gin.Context) { c.Next() }
	if deps.IdempotencyCache != nil {
		ttl := deps.IdempotencyTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		idempotent = middleware.Idempotency(deps.IdempotencyCache, ttl, deps.Logger)
	}

	fn := NewFunctionHandler(deps.Events)
	functions := r.Group("/api/v1/functions", auth...)
	{
		functions.GET("", rl("functions_list"), fn.List)
		functions.POST("/:name", rl("functions"), idempotent, fn.Invoke)
	}

	return r
}
