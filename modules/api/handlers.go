package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/marufk21/1fi/domain/money"
	"github.com/marufk21/1fi/domain/pricing"
	"github.com/marufk21/1fi/domain/product"
	"github.com/marufk21/1fi/modules/catalog"
	"github.com/marufk21/1fi/pkg/errx"
	"github.com/rs/zerolog"
)

// HealthChecker is a module whose health the /health endpoint reports.
type HealthChecker interface {
	Name() string
	Health(ctx context.Context) mono.HealthStatus
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	catalog   catalog.CatalogPort
	formatter *money.Formatter
	checks    []HealthChecker
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(port catalog.CatalogPort, formatter *money.Formatter, checks ...HealthChecker) *Handlers {
	return &Handlers{
		catalog:   port,
		formatter: formatter,
		checks:    checks,
	}
}

// ListProducts handles GET /products.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return errx.Internal(err, errx.FetchProductsMessage)
	}
	if products == nil {
		products = []product.Product{}
	}
	return c.JSON(ProductListResponse{Products: products})
}

// GetProduct handles GET /products/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	p, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return lookupError(err)
	}
	return c.JSON(p)
}

// Quote handles GET /products/:id/quote?color=&storage=&emi=.
func (h *Handlers) Quote(c *fiber.Ctx) error {
	sel, err := selectionFromQuery(c)
	if err != nil {
		return err
	}

	p, q, err := h.catalog.Quote(c.UserContext(), c.Params("id"), sel)
	if err != nil {
		return lookupError(err)
	}

	return c.JSON(QuoteResponse{
		ProductID: p.ID,
		Quote:     *q,
		Display:   h.display(p, q),
	})
}

// Health handles GET /health.
func (h *Handlers) Health(c *fiber.Ctx) error {
	resp := HealthResponse{
		Status:  "healthy",
		Modules: make(map[string]ModuleHealth, len(h.checks)),
	}
	for _, check := range h.checks {
		status := check.Health(c.UserContext())
		resp.Modules[check.Name()] = ModuleHealth{
			Healthy: status.Healthy,
			Message: status.Message,
			Details: status.Details,
		}
		if !status.Healthy {
			resp.Status = "unhealthy"
		}
	}

	code := fiber.StatusOK
	if resp.Status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}

func (h *Handlers) display(p *product.Product, q *pricing.Quote) QuoteDisplay {
	d := QuoteDisplay{
		Price:         h.formatter.Format(q.CalculatedPrice),
		OriginalPrice: h.formatter.Format(q.CalculatedOriginalPrice),
		Savings:       h.formatter.Format(q.Savings),
		EmiFrom:       h.formatter.Format(pricing.StartingMonthly(p)),
	}
	if in := q.Installment; in != nil {
		d.DurationMonths = in.DurationMonths
		d.MonthlyAmount = h.formatter.Format(in.MonthlyAmount)
		d.TotalRepayment = h.formatter.Format(in.TotalRepayment)
		d.Cashback = h.formatter.Format(in.Cashback)
		d.InterestRate = in.InterestRate.String() + "%"
	}
	return d
}

// selectionFromQuery reads color, storage and emi. Absent parameters stay
// nil so the catalog fills them from the initial selection.
func selectionFromQuery(c *fiber.Ctx) (pricing.Selection, error) {
	var sel pricing.Selection
	if color := c.Query("color"); color != "" {
		sel = sel.WithColor(color)
	}
	if storage := c.Query("storage"); storage != "" {
		sel = sel.WithStorage(storage)
	}
	if emi := c.Query("emi"); emi != "" {
		months, err := strconv.Atoi(emi)
		if err != nil {
			return sel, errx.BadRequest(err, fmt.Sprintf("invalid emi %q: must be a whole number of months", emi))
		}
		sel = sel.WithEmiMonths(months)
	}
	return sel, nil
}

func lookupError(err error) error {
	if errors.Is(err, product.ErrNotFound) {
		return errx.NotFound(err)
	}
	return errx.Internal(err, errx.FetchProductMessage)
}

// errorHandler renders AppErrors and Fiber errors as ErrorResponse. Details
// are only exposed for server errors.
func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *errx.AppError
		if errors.As(err, &appErr) {
			resp := ErrorResponse{Error: appErr.Message}
			if appErr.Status >= fiber.StatusInternalServerError {
				logger.Error().Err(appErr.Err).Str("path", c.Path()).Msg(appErr.Message)
				resp.Details = appErr.Details()
			}
			return c.Status(appErr.Status).JSON(resp)
		}

		code := fiber.StatusInternalServerError
		message := errx.SystemErrorMessage
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		return c.Status(code).JSON(ErrorResponse{Error: message})
	}
}
