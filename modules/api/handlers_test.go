package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-monolith/mono"
	"github.com/marufk21/1fi/domain/money"
	"github.com/marufk21/1fi/domain/pricing"
	"github.com/marufk21/1fi/domain/product"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalogPort implements catalog.CatalogPort for testing
type mockCatalogPort struct {
	listFunc  func(ctx context.Context) ([]product.Product, error)
	getFunc   func(ctx context.Context, id string) (*product.Product, error)
	quoteFunc func(ctx context.Context, id string, sel pricing.Selection) (*product.Product, *pricing.Quote, error)
}

func (m *mockCatalogPort) ListProducts(ctx context.Context) ([]product.Product, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) Quote(ctx context.Context, id string, sel pricing.Selection) (*product.Product, *pricing.Quote, error) {
	if m.quoteFunc != nil {
		return m.quoteFunc(ctx, id, sel)
	}
	return nil, nil, errors.New("not implemented")
}

type staticHealth struct {
	name   string
	status mono.HealthStatus
}

func (s staticHealth) Name() string { return s.name }

func (s staticHealth) Health(context.Context) mono.HealthStatus { return s.status }

func testProduct() *product.Product {
	return &product.Product{
		ID:            "phone-a",
		Name:          "Phone A",
		Price:         decimal.NewFromInt(50000),
		OriginalPrice: decimal.NewFromInt(60000),
		Savings:       decimal.NewFromInt(10000),
		Colors:        []product.ProductColor{{ID: "phone-a-black", Name: "Black"}},
		StorageOptions: []product.ProductStorage{
			{ID: "phone-a-s1", Size: "128 GB", PriceAdjustment: decimal.Zero},
			{ID: "phone-a-s2", Size: "256 GB", PriceAdjustment: decimal.NewFromInt(5000)},
		},
		EmiPlans: []product.ProductEmiPlan{
			{DurationMonths: 6, MonthlyAmount: decimal.NewFromInt(9000), Cashback: decimal.NewFromInt(500), InterestRate: decimal.Zero},
		},
	}
}

// quoteFromStore mimics the catalog service: resolve against the initial
// selection, then derive.
func quoteFromStore(_ context.Context, id string, sel pricing.Selection) (*product.Product, *pricing.Quote, error) {
	p := testProduct()
	if id != p.ID {
		return nil, nil, product.ErrNotFound
	}
	resolved := pricing.InitialSelection(p)
	if sel.StorageID != nil {
		resolved = resolved.WithStorage(*sel.StorageID)
	}
	if sel.EmiMonths != nil {
		resolved = resolved.WithEmiMonths(*sel.EmiMonths)
	}
	q := pricing.Derive(p, resolved)
	return p, &q, nil
}

func newTestApp(port *mockCatalogPort, checks ...HealthChecker) func(*testing.T, string) (int, []byte) {
	h := NewHandlers(port, money.MustNewFormatter("en-IN", "INR", 0), checks...)
	app := NewApp(h, AppConfig{CORSOrigins: "*"}, zerolog.Nop())

	return func(t *testing.T, target string) (int, []byte) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, body
	}
}

func TestListProducts(t *testing.T) {
	tests := []struct {
		name           string
		port           *mockCatalogPort
		expectedStatus int
		check          func(t *testing.T, body map[string]any)
	}{
		{
			name: "products returned",
			port: &mockCatalogPort{listFunc: func(context.Context) ([]product.Product, error) {
				return []product.Product{*testProduct()}, nil
			}},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				products := body["products"].([]any)
				require.Len(t, products, 1)
				first := products[0].(map[string]any)
				assert.Equal(t, "phone-a", first["id"])
				assert.Equal(t, float64(50000), first["price"])
			},
		},
		{
			name: "empty store is an empty array",
			port: &mockCatalogPort{listFunc: func(context.Context) ([]product.Product, error) {
				return nil, nil
			}},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{}, body["products"])
			},
		},
		{
			name: "store failure",
			port: &mockCatalogPort{listFunc: func(context.Context) ([]product.Product, error) {
				return nil, errors.New("connection refused")
			}},
			expectedStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Failed to fetch products", body["error"])
				assert.Equal(t, "connection refused", body["details"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			do := newTestApp(tt.port)
			for _, target := range []string{"/products", "/api/products"} {
				status, raw := do(t, target)
				assert.Equal(t, tt.expectedStatus, status, target)

				var body map[string]any
				require.NoError(t, json.Unmarshal(raw, &body))
				tt.check(t, body)
			}
		})
	}
}

func TestGetProduct(t *testing.T) {
	port := &mockCatalogPort{getFunc: func(_ context.Context, id string) (*product.Product, error) {
		switch id {
		case "phone-a":
			return testProduct(), nil
		case "broken":
			return nil, errors.New("disk I/O error")
		default:
			return nil, product.ErrNotFound
		}
	}}
	do := newTestApp(port)

	t.Run("found", func(t *testing.T) {
		status, raw := do(t, "/products/phone-a")
		assert.Equal(t, http.StatusOK, status)

		var p product.Product
		require.NoError(t, json.Unmarshal(raw, &p))
		assert.Equal(t, "Phone A", p.Name)
		assert.Len(t, p.StorageOptions, 2)
		assert.True(t, p.EmiPlans[0].MonthlyAmount.Equal(decimal.NewFromInt(9000)))
	})

	t.Run("not found", func(t *testing.T) {
		status, raw := do(t, "/api/products/missing")
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"error":"Product not found"}`, string(raw))
	})

	t.Run("store failure", func(t *testing.T) {
		status, raw := do(t, "/products/broken")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{"error":"Failed to fetch product","details":"disk I/O error"}`, string(raw))
	})
}

func TestQuote(t *testing.T) {
	do := newTestApp(&mockCatalogPort{quoteFunc: quoteFromStore})

	t.Run("storage and plan selected", func(t *testing.T) {
		status, raw := do(t, "/products/phone-a/quote?storage=phone-a-s2&emi=6")
		require.Equal(t, http.StatusOK, status, string(raw))

		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(raw, &resp))
		assert.Equal(t, "phone-a", resp.ProductID)
		assert.True(t, resp.CalculatedPrice.Equal(decimal.NewFromInt(55000)))
		assert.True(t, resp.CalculatedOriginalPrice.Equal(decimal.NewFromInt(65000)))
		require.NotNil(t, resp.Installment)
		assert.True(t, resp.Installment.TotalRepayment.Equal(decimal.NewFromInt(54000)))

		assert.Equal(t, "₹55,000", resp.Display.Price)
		assert.Equal(t, "₹54,000", resp.Display.TotalRepayment)
		assert.Equal(t, "₹500", resp.Display.Cashback)
		assert.Equal(t, "0%", resp.Display.InterestRate)
	})

	t.Run("defaults when no params", func(t *testing.T) {
		status, raw := do(t, "/api/products/phone-a/quote")
		require.Equal(t, http.StatusOK, status)

		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(raw, &resp))
		require.NotNil(t, resp.Selection.StorageID)
		assert.Equal(t, "phone-a-s1", *resp.Selection.StorageID)
		assert.Equal(t, "₹50,000", resp.Display.Price)
	})

	t.Run("plan without match has no installment", func(t *testing.T) {
		status, raw := do(t, "/products/phone-a/quote?emi=24")
		require.Equal(t, http.StatusOK, status)

		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(raw, &resp))
		assert.Nil(t, resp.Installment)
		assert.Empty(t, resp.Display.MonthlyAmount)
	})

	t.Run("non-integer emi", func(t *testing.T) {
		status, raw := do(t, "/products/phone-a/quote?emi=six")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(raw), "invalid emi")
	})

	t.Run("unknown product", func(t *testing.T) {
		status, raw := do(t, "/products/missing/quote")
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"error":"Product not found"}`, string(raw))
	})
}

func TestHealth(t *testing.T) {
	healthy := staticHealth{name: "catalog", status: mono.HealthStatus{Healthy: true, Message: "operational"}}
	down := staticHealth{name: "catalog", status: mono.HealthStatus{Healthy: false, Message: "database ping failed"}}

	status, raw := newTestApp(&mockCatalogPort{}, healthy)(t, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"status":"healthy"`)

	status, raw = newTestApp(&mockCatalogPort{}, down)(t, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(raw), "database ping failed")
}
