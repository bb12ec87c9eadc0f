package api

import (
	"github.com/marufk21/1fi/domain/pricing"
	"github.com/marufk21/1fi/domain/product"
)

// ProductListResponse is the body of GET /products.
type ProductListResponse struct {
	Products []product.Product `json:"products"`
}

// QuoteResponse is the body of GET /products/:id/quote: the derived values
// plus the strings a product page displays.
type QuoteResponse struct {
	ProductID string `json:"productId"`
	pricing.Quote
	Display QuoteDisplay `json:"display"`
}

// QuoteDisplay holds formatted currency strings. Installment fields are empty
// when no plan is selected.
type QuoteDisplay struct {
	Price          string `json:"price"`
	OriginalPrice  string `json:"originalPrice"`
	Savings        string `json:"savings"`
	EmiFrom        string `json:"emiFrom"`
	MonthlyAmount  string `json:"monthlyAmount,omitempty"`
	TotalRepayment string `json:"totalRepayment,omitempty"`
	Cashback       string `json:"cashback,omitempty"`
	InterestRate   string `json:"interestRate,omitempty"`
	DurationMonths int    `json:"durationMonths,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string                  `json:"status"`
	Modules map[string]ModuleHealth `json:"modules"`
}

// ModuleHealth is the reported health of one module.
type ModuleHealth struct {
	Healthy bool           `json:"healthy"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
