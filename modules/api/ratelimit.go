package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"
)

// TooManyRequestsMessage is the error body of a limited request.
const TooManyRequestsMessage = "Too many requests. Please slow down."

// RateLimit limits requests per client IP. Max of 0 disables limiting. A nil
// Storage keeps counters in process memory.
type RateLimit struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage
}

// rateLimiter returns the limiter middleware, or nil when disabled. Health
// checks are never limited.
func rateLimiter(rl RateLimit) fiber.Handler {
	if rl.Max <= 0 {
		return nil
	}
	return limiter.New(limiter.Config{
		Max:        rl.Max,
		Expiration: rl.Window,
		Storage:    rl.Storage,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasSuffix(c.Path(), "/health")
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{Error: TooManyRequestsMessage})
		},
	})
}

// newRedisStorage connects the limiter counters to Redis so they are shared
// between instances. The storage driver panics when Redis is unreachable.
func newRedisStorage(url string) (storage *redis.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to connect to redis: %v", r)
		}
	}()
	return redis.New(redis.Config{
		URL:      url,
		PoolSize: 10,
	}), nil
}
