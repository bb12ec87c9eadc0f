// Package client reads the catalog HTTP API and keeps per-key query state
// for a session. Concurrent requests for the same key share one network
// call, and successful results are kept for the life of the Client.
package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/marufk21/1fi/domain/product"
	"github.com/marufk21/1fi/pkg/logx"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// FallbackMessage is shown when the server gives no usable error message.
const FallbackMessage = "Unable to load product right now. Please try again."

const (
	// ProductsKey is the query key of the product list.
	ProductsKey = "products"

	defaultTimeout = 10 * time.Second
)

// ErrNotFound is returned when the server answers 404 for a product.
var ErrNotFound = errors.New("product not found")

// Error is a failed request. Message is safe to show to a shopper.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// ProductKey is the query key of one product.
func ProductKey(id string) string {
	return "product/" + id
}

// Client is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
	group  singleflight.Group

	mu     sync.RWMutex
	states map[string]entry
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every network call, including ones that outlive the
// caller that started them.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API at baseURL, e.g. "http://localhost:3000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		logger: logx.Module("client"),
		states: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Products returns the product list query.
func (c *Client) Products(ctx context.Context) QueryState[[]product.Product] {
	return query(ctx, c, ProductsKey, c.fetchProducts)
}

// Product returns the query for one product. An empty id leaves the query
// idle and makes no request.
func (c *Client) Product(ctx context.Context, id string) QueryState[*product.Product] {
	if id == "" {
		return QueryState[*product.Product]{Status: StatusIdle}
	}
	return query(ctx, c, ProductKey(id), func(ctx context.Context) (*product.Product, error) {
		return c.fetchProduct(ctx, id)
	})
}

// State returns the current snapshot of key without starting a request.
// Keys never queried are idle.
func (c *Client) State(key string) QueryState[any] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.states[key]
	if !ok {
		return QueryState[any]{Status: StatusIdle}
	}
	return typed[any](e)
}

func (c *Client) cached(key string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.states[key]
	return e, ok && e.status == StatusSuccess
}

func (c *Client) set(key string, e entry) {
	c.mu.Lock()
	c.states[key] = e
	c.mu.Unlock()
}

// query serves key from the session cache or joins the single in-flight
// request for it. The request runs detached from ctx so an abandoned caller
// does not fail the others; a cancelled caller returns immediately.
func query[T any](ctx context.Context, c *Client, key string, fetch func(context.Context) (T, error)) QueryState[T] {
	if e, ok := c.cached(key); ok {
		return typed[T](e)
	}

	c.mu.Lock()
	if e, ok := c.states[key]; !ok || e.status != StatusSuccess {
		c.states[key] = entry{status: StatusLoading}
	}
	c.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// A flight that finished between the cache check and here already
		// stored the result.
		if e, ok := c.cached(key); ok {
			return e.data, nil
		}

		data, err := fetch(detached)
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("query failed")
			c.set(key, entry{status: StatusError, err: err})
			return nil, err
		}
		c.set(key, entry{status: StatusSuccess, data: data})
		return data, nil
	})

	select {
	case <-ctx.Done():
		return QueryState[T]{Status: StatusError, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return QueryState[T]{Status: StatusError, Err: res.Err}
		}
		data, _ := res.Val.(T)
		return QueryState[T]{Status: StatusSuccess, Data: data}
	}
}

type productListBody struct {
	Products []product.Product `json:"products"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (c *Client) fetchProducts(ctx context.Context) ([]product.Product, error) {
	var body productListBody
	err := c.get(ctx, &body, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/products")
	})
	if err != nil {
		return nil, err
	}
	if body.Products == nil {
		body.Products = []product.Product{}
	}
	return body.Products, nil
}

func (c *Client) fetchProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	err := c.get(ctx, &p, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Get("/products/{id}")
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// get decodes a 2xx JSON body into out. A 404 becomes ErrNotFound, any
// other failure an *Error carrying the server's message when it sent one.
func (c *Client) get(ctx context.Context, out any, send func(*resty.Request) (*resty.Response, error)) error {
	resp, err := send(c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&errorBody{}))
	if resp == nil || resp.StatusCode() == 0 {
		return &Error{Message: FallbackMessage, Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if !resp.IsError() {
		if err != nil {
			return &Error{StatusCode: resp.StatusCode(), Message: FallbackMessage, Err: err}
		}
		return nil
	}

	message := FallbackMessage
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		message = body.Error
	}
	return &Error{StatusCode: resp.StatusCode(), Message: message, Err: err}
}
