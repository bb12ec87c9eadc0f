package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/marufk21/1fi/domain/pricing"
	"github.com/marufk21/1fi/domain/product"
)

// CatalogPort is what other modules use to read the catalog.
type CatalogPort interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	Quote(ctx context.Context, id string, sel pricing.Selection) (*product.Product, *pricing.Quote, error)
}

// Adapter implements CatalogPort over the catalog service container.
type Adapter struct {
	container mono.ServiceContainer
}

var _ CatalogPort = (*Adapter)(nil)

// NewAdapter creates a new Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{
		container: container,
	}
}

// ListProducts returns the whole catalog.
func (a *Adapter) ListProducts(ctx context.Context) ([]product.Product, error) {
	req := ListProductsRequest{}
	var resp ListProductsResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	if resp.Products == nil {
		resp.Products = []product.Product{}
	}
	return resp.Products, nil
}

// GetProduct returns one product, or product.ErrNotFound.
func (a *Adapter) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	req := GetProductRequest{ID: id}
	var resp GetProductResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	if resp.NotFound {
		return nil, product.ErrNotFound
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Product, nil
}

// Quote returns the product and the quote for sel.
func (a *Adapter) Quote(ctx context.Context, id string, sel pricing.Selection) (*product.Product, *pricing.Quote, error) {
	req := QuoteRequest{ID: id, Selection: sel}
	var resp QuoteResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"quote",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, nil, fmt.Errorf("quote request failed: %w", err)
	}
	if resp.NotFound {
		return nil, nil, product.ErrNotFound
	}
	if resp.Error != "" {
		return nil, nil, errors.New(resp.Error)
	}
	return resp.Product, resp.Quote, nil
}
