package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/surgishop/backend/internal/infrastructure/config"
	"github.com/surgishop/backend/internal/infrastructure/logger"
	"github.com/surgishop/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineOptions carries what New needs besides the handlers
type EngineOptions struct {
	HTTP   config.HTTPConfig
	Logger *zap.Logger
	// Meter records HTTP metrics; nil disables them
	Meter metric.Meter
	// RequestTimeout bounds each request context; zero disables it
	RequestTimeout time.Duration
}

// New builds the engine with the full middleware chain and every domain route.
// The returned limiter, if any, must be stopped on shutdown.
func New(h Handlers, opts EngineOptions) (*gin.Engine, *middleware.RateLimiter, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if err := middleware.SetupValidator(); err != nil {
		return nil, nil, err
	}

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			return nil, nil, fmt.Errorf("trusted proxies: %w", err)
		}
	} else if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, nil, fmt.Errorf("trusted proxies: %w", err)
	}

	metricsMiddleware, err := middleware.HTTPMetrics(opts.Meter)
	if err != nil {
		return nil, nil, fmt.Errorf("http metrics: %w", err)
	}

	cors := middleware.DefaultCORSConfig()
	if len(opts.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = opts.HTTP.CORSAllowOrigins
	}
	if len(opts.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = opts.HTTP.CORSAllowMethods
	}
	if len(opts.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = opts.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(opts.Logger),
		logger.GinMiddleware(opts.Logger),
		metricsMiddleware,
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(opts.HTTP.MaxBodySize),
		middleware.Timeout(opts.RequestTimeout),
	)

	var limiter *middleware.RateLimiter
	if opts.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(opts.HTTP.RateLimitRequests, opts.HTTP.RateLimitWindow, opts.HTTP.RateLimitBurst)
	}

	// Health stays outside the API prefix and the rate limit
	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	groups := domainGroups(h)
	registrars := make([]RouteRegistrar, 0, len(groups))
	for _, group := range groups {
		if limiter != nil {
			group.Use(middleware.RateLimit(limiter))
		}
		registrars = append(registrars, group)
	}
	Mount(engine, APIVersion, registrars...)

	return engine, limiter, nil
}

func domainGroups(h Handlers) []*DomainGroup {
	var groups []*DomainGroup
	if h.Customers != nil {
		groups = append(groups, CustomerRoutes(h.Customers))
	}
	if h.SalesDocuments != nil {
		groups = append(groups, SalesDocumentRoutes(h.SalesDocuments))
	}
	if h.PurchaseReceipts != nil {
		groups = append(groups, PurchaseReceiptRoutes(h.PurchaseReceipts))
	}
	if h.System != nil {
		groups = append(groups, SystemRoutes(h.System))
	}
	return groups
}
