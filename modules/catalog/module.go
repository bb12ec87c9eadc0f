package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/marufk21/1fi/domain/product"
	"github.com/marufk21/1fi/pkg/errx"
	"github.com/marufk21/1fi/pkg/logx"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Module owns the catalog database and registers the list, get and quote
// services.
type Module struct {
	db          *gorm.DB
	repo        *product.Repository
	service     *Service
	databaseURL string
	debug       bool
	logger      zerolog.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new catalog module backed by databaseURL.
func NewModule(databaseURL string, debug bool) *Module {
	return &Module{
		databaseURL: databaseURL,
		debug:       debug,
		logger:      logx.Module("catalog"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// Start opens the database and runs migrations.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info().Str("driver", product.Driver(m.databaseURL)).Msg("connecting to catalog database")

	db, err := product.Open(m.databaseURL, m.debug)
	if err != nil {
		return err
	}
	m.db = db
	m.repo = product.NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(m.repo, m.logger)

	m.logger.Info().Msg("module started")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info().Msg("database connection closed")
	return nil
}

// Health pings the database and reports the catalog size.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"driver": product.Driver(m.databaseURL),
	}
	if count, err := m.repo.Count(ctx); err == nil {
		details["products"] = count
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes names, so "get" becomes "services.catalog.get".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listProducts,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "quote", json.Unmarshal, json.Marshal, m.quote,
	); err != nil {
		return fmt.Errorf("failed to register quote service: %w", err)
	}

	m.logger.Info().Msg("registered services: services.catalog.{list,get,quote}")
	return nil
}

// listProducts handles the catalog.list service request. Store failures are
// reported in the response body so the caller can tell them from transport
// errors.
func (m *Module) listProducts(ctx context.Context, _ ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products, err := m.service.ListProducts(ctx)
	if err != nil {
		m.logger.Error().Err(err).Msg("list products failed")
		return ListProductsResponse{Error: err.Error()}, nil
	}
	return ListProductsResponse{Products: products}, nil
}

// getProduct handles the catalog.get service request.
func (m *Module) getProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (GetProductResponse, error) {
	p, err := m.service.GetProduct(ctx, req.ID)
	switch {
	case errors.Is(err, product.ErrNotFound):
		return GetProductResponse{NotFound: true, Error: errx.NotFoundMessage}, nil
	case err != nil:
		m.logger.Error().Err(err).Str("id", req.ID).Msg("get product failed")
		return GetProductResponse{Error: err.Error()}, nil
	}
	return GetProductResponse{Product: p}, nil
}

// quote handles the catalog.quote service request.
func (m *Module) quote(ctx context.Context, req QuoteRequest, _ *mono.Msg) (QuoteResponse, error) {
	p, q, err := m.service.Quote(ctx, req.ID, req.Selection)
	switch {
	case errors.Is(err, product.ErrNotFound):
		return QuoteResponse{NotFound: true, Error: errx.NotFoundMessage}, nil
	case err != nil:
		m.logger.Error().Err(err).Str("id", req.ID).Msg("quote failed")
		return QuoteResponse{Error: err.Error()}, nil
	}
	return QuoteResponse{Product: p, Quote: &q}, nil
}
