// Package catalog owns the product store and serves read and quote
// operations to other modules through the service container.
package catalog

import (
	"context"
	"fmt"

	"github.com/marufk21/1fi/domain/pricing"
	"github.com/marufk21/1fi/domain/product"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Service provides catalog read operations.
type Service struct {
	repo    *product.Repository
	logger  zerolog.Logger
	sfGroup singleflight.Group // collapses concurrent reads of the same key
}

// NewService creates a new catalog service.
func NewService(repo *product.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns every product with its children, in seed order.
func (s *Service) ListProducts(ctx context.Context) ([]product.Product, error) {
	val, err, shared := s.sfGroup.Do("products", func() (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if shared {
		s.logger.Debug().Msg("list products shared an in-flight read")
	}
	return val.([]product.Product), nil
}

// GetProduct returns one product with its children, or product.ErrNotFound.
func (s *Service) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	val, err, _ := s.sfGroup.Do("product:"+id, func() (any, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return val.(*product.Product), nil
}

// Quote resolves sel against the product's initial selection and derives
// its prices.
func (s *Service) Quote(ctx context.Context, id string, sel pricing.Selection) (*product.Product, pricing.Quote, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, pricing.Quote{}, err
	}
	return p, pricing.Derive(p, ResolveSelection(p, sel)), nil
}

// ResolveSelection fills every unset field of sel from InitialSelection(p).
func ResolveSelection(p *product.Product, sel pricing.Selection) pricing.Selection {
	resolved := pricing.InitialSelection(p)
	if sel.ColorID != nil {
		resolved = resolved.WithColor(*sel.ColorID)
	}
	if sel.StorageID != nil {
		resolved = resolved.WithStorage(*sel.StorageID)
	}
	if sel.EmiMonths != nil {
		resolved = resolved.WithEmiMonths(*sel.EmiMonths)
	}
	return resolved
}
