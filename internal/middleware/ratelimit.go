package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/dto"
	"github.com/shapecalc/shapecalc/internal/pkg/circuitbreaker"
	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
)

// WindowCounter counts hits inside a sliding window shared between instances
type WindowCounter interface {
	SlidingWindow(ctx context.Context, key, member string, window time.Duration, now time.Time) (int64, error)
}

// BreakerCounter guards a WindowCounter with a circuit breaker
type BreakerCounter struct {
	counter WindowCounter
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerCounter wraps counter with breaker
func NewBreakerCounter(counter WindowCounter, breaker *circuitbreaker.CircuitBreaker) *BreakerCounter {
	return &BreakerCounter{
		counter: counter,
		breaker: breaker,
	}
}

// SlidingWindow implements WindowCounter
func (b *BreakerCounter) SlidingWindow(ctx context.Context, key, member string, window time.Duration, now time.Time) (int64, error) {
	return circuitbreaker.Do(ctx, b.breaker, func(ctx context.Context) (int64, error) {
		return b.counter.SlidingWindow(ctx, key, member, window, now)
	})
}

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Key generator function
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
	// Custom limit exceeded handler
	LimitReached fiber.Handler
	// Logger reports counter failures
	Logger *zap.Logger
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:    100,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Skip:         HealthSkipper,
		LimitReached: limitReached,
	}
}

func limitReached(c *fiber.Ctx) error {
	rateLimitedTotal.Inc()
	return dto.WriteError(c, apperrors.RateLimited())
}

// RateLimitMiddleware limits requests per client. With a WindowCounter the
// window is shared through it, otherwise it is kept in process memory.
type RateLimitMiddleware struct {
	counter WindowCounter
	config  RateLimitConfig
}

// NewRateLimitMiddleware creates a new rate limit middleware. counter may be nil.
func NewRateLimitMiddleware(counter WindowCounter, config ...RateLimitConfig) *RateLimitMiddleware {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = func(c *fiber.Ctx) string { return c.IP() }
	}
	if cfg.LimitReached == nil {
		cfg.LimitReached = limitReached
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &RateLimitMiddleware{
		counter: counter,
		config:  cfg,
	}
}

// Handler returns the rate limit handler
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	if m.counter == nil {
		return m.memoryHandler()
	}
	return m.sharedHandler()
}

// memoryHandler delegates to fiber's in-process sliding window limiter
func (m *RateLimitMiddleware) memoryHandler() fiber.Handler {
	return limiter.New(limiter.Config{
		Next:              m.config.Skip,
		Max:               m.config.Max,
		Expiration:        m.config.Window,
		KeyGenerator:      m.config.KeyGenerator,
		LimitReached:      m.config.LimitReached,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

// sharedHandler counts hits through the WindowCounter
func (m *RateLimitMiddleware) sharedHandler() fiber.Handler {
	windowSeconds := int64(math.Ceil(m.config.Window.Seconds()))
	if windowSeconds < 1 {
		windowSeconds = 1
	}

	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s", m.config.KeyGenerator(c))
		now := time.Now()
		member := fmt.Sprintf("%d:%s", now.UnixNano(), GetRequestID(c))

		count, err := m.counter.SlidingWindow(c.UserContext(), key, member, m.config.Window, now)
		if err != nil {
			// Fail open: an unavailable counter must not take the API down
			m.config.Logger.Warn("rate limit counter unavailable",
				zap.Error(err),
				zap.String("key", key),
			)
			return c.Next()
		}

		reset := strconv.FormatInt(now.Unix()+windowSeconds, 10)
		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Reset", reset)

		if count > int64(m.config.Max) {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(windowSeconds, 10))
			return m.config.LimitReached(c)
		}

		c.Set("X-RateLimit-Remaining", strconv.FormatInt(int64(m.config.Max)-count, 10))

		return c.Next()
	}
}
