// Package api serves the catalog over HTTP with Fiber.
package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis/v3"
	"github.com/marufk21/1fi/config"
	"github.com/marufk21/1fi/domain/money"
	"github.com/marufk21/1fi/modules/catalog"
	"github.com/marufk21/1fi/pkg/logx"
	"github.com/rs/zerolog"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app            *fiber.App
	catalogAdapter catalog.CatalogPort
	checks         []HealthChecker
	storage        *redis.Storage
	cfg            *config.Config
	logger         zerolog.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule. checks are reported by GET /health.
func NewModule(cfg *config.Config, checks ...HealthChecker) *APIModule {
	return &APIModule{
		cfg:    cfg,
		checks: checks,
		logger: logx.Module("api"),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"catalog"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalogAdapter = catalog.NewAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.catalogAdapter == nil {
		return errors.New("catalog dependency not set")
	}

	formatter, err := money.NewFormatter(m.cfg.CurrencyLocale, m.cfg.CurrencyCode, 0)
	if err != nil {
		return fmt.Errorf("failed to create money formatter: %w", err)
	}

	rl := RateLimit{Max: m.cfg.RateLimitMax, Window: m.cfg.RateLimitWindow}
	if m.cfg.RedisURL != "" && rl.Max > 0 {
		storage, err := newRedisStorage(m.cfg.RedisURL)
		if err != nil {
			return err
		}
		m.storage = storage
		rl.Storage = storage
		m.logger.Info().Msg("rate limit counters stored in redis")
	}

	handlers := NewHandlers(m.catalogAdapter, formatter, append([]HealthChecker{m}, m.checks...)...)
	m.app = NewApp(handlers, AppConfig{CORSOrigins: m.cfg.CORSOrigins, RateLimit: rl}, m.logger)

	addr := ":" + strconv.Itoa(m.cfg.HTTPPort)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			m.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	m.logger.Info().Str("addr", addr).Msg("HTTP server started")
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info().Msg("shutting down HTTP server")
	err := m.app.ShutdownWithContext(ctx)
	if m.storage != nil {
		if cerr := m.storage.Close(); cerr != nil {
			m.logger.Warn().Err(cerr).Msg("failed to close redis storage")
		}
	}
	return err
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	limiterStore := "memory"
	switch {
	case m.cfg.RateLimitMax <= 0:
		limiterStore = "disabled"
	case m.storage != nil:
		limiterStore = "redis"
	}
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port":       m.cfg.HTTPPort,
			"rate_limit": limiterStore,
		},
	}
}

// AppConfig holds the middleware settings of NewApp.
type AppConfig struct {
	CORSOrigins string
	RateLimit   RateLimit
}

// NewApp builds the Fiber app with middleware and routes. Routes are served
// both at the root and under /api.
func NewApp(h *Handlers, cfg AppConfig, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))
	if limit := rateLimiter(cfg.RateLimit); limit != nil {
		app.Use(limit)
	}

	registerRoutes(app, h)
	registerRoutes(app.Group("/api"), h)
	return app
}

func registerRoutes(r fiber.Router, h *Handlers) {
	r.Get("/health", h.Health)
	r.Get("/products", h.ListProducts)
	r.Get("/products/:id", h.GetProduct)
	r.Get("/products/:id/quote", h.Quote)
}
