package catalog

import (
	"github.com/marufk21/1fi/domain/pricing"
	"github.com/marufk21/1fi/domain/product"
)

// ListProductsRequest represents a list products request.
type ListProductsRequest struct{}

// ListProductsResponse represents a list products response.
type ListProductsResponse struct {
	Products []product.Product `json:"products"`
	Error    string            `json:"error,omitempty"`
}

// GetProductRequest represents a get product request.
type GetProductRequest struct {
	ID string `json:"id"`
}

// GetProductResponse represents a get product response. NotFound is set
// instead of Error when the id does not resolve.
type GetProductResponse struct {
	Product  *product.Product `json:"product,omitempty"`
	NotFound bool             `json:"not_found,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// QuoteRequest asks for the derived prices of a product. Nil selection
// fields fall back to the product's initial selection.
type QuoteRequest struct {
	ID        string            `json:"id"`
	Selection pricing.Selection `json:"selection"`
}

// QuoteResponse carries the product together with its quote.
type QuoteResponse struct {
	Product  *product.Product `json:"product,omitempty"`
	Quote    *pricing.Quote   `json:"quote,omitempty"`
	NotFound bool             `json:"not_found,omitempty"`
	Error    string           `json:"error,omitempty"`
}
