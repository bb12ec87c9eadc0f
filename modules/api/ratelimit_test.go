package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marufk21/1fi/domain/money"
	"github.com/marufk21/1fi/domain/product"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

// checkRedisAvailable skips the test when Redis is not reachable, since the
// storage driver panics on connection failure.
func checkRedisAvailable(t *testing.T) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", testRedisAddr, 2*time.Second)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	conn.Close()
}

func limitedApp(rl RateLimit) func(t *testing.T, target string) int {
	port := &mockCatalogPort{listFunc: func(context.Context) ([]product.Product, error) {
		return []product.Product{}, nil
	}}
	h := NewHandlers(port, money.MustNewFormatter("en-IN", "INR", 0))
	app := NewApp(h, AppConfig{CORSOrigins: "*", RateLimit: rl}, zerolog.Nop())

	return func(t *testing.T, target string) int {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
}

func TestRateLimit_Memory(t *testing.T) {
	do := limitedApp(RateLimit{Max: 2, Window: time.Minute})

	assert.Equal(t, http.StatusOK, do(t, "/products"))
	assert.Equal(t, http.StatusOK, do(t, "/api/products"))
	assert.Equal(t, http.StatusTooManyRequests, do(t, "/products"))

	// Health checks are never limited.
	assert.Equal(t, http.StatusOK, do(t, "/health"))
	assert.Equal(t, http.StatusOK, do(t, "/api/health"))
}

func TestRateLimit_Disabled(t *testing.T) {
	do := limitedApp(RateLimit{})
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, do(t, "/products"))
	}
}

func TestRateLimit_Redis(t *testing.T) {
	checkRedisAvailable(t)

	storage, err := newRedisStorage("redis://" + testRedisAddr + "/0")
	require.NoError(t, err)
	t.Cleanup(func() {
		storage.Reset()
		storage.Close()
	})
	require.NoError(t, storage.Reset())

	do := limitedApp(RateLimit{Max: 1, Window: time.Minute, Storage: storage})
	assert.Equal(t, http.StatusOK, do(t, "/products"))
	assert.Equal(t, http.StatusTooManyRequests, do(t, "/products"))
}
