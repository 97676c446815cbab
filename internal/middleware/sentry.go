package middleware

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

// localsSentryHub is the fiber locals key holding the per-request Sentry hub
const localsSentryHub = "sentryHub"

// SentryConfig holds Sentry client options
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	Debug       bool
	SampleRate  float64
}

// InitSentry initializes the Sentry SDK. An empty DSN leaves Sentry disabled.
func InitSentry(config SentryConfig) error {
	if config.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		Debug:            config.Debug,
		SampleRate:       config.SampleRate,
		AttachStacktrace: true,
	}); err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	return nil
}

// FlushSentry waits up to timeout for buffered events to be sent
func FlushSentry(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// SentryMiddleware attaches a cloned hub carrying the request context
func SentryMiddleware(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled {
			return c.Next()
		}

		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetTag("request_id", GetRequestID(c))
		hub.Scope().SetContext("Request", requestContext(c))
		c.Locals(localsSentryHub, hub)

		return c.Next()
	}
}

// CaptureError reports err on the request hub
func CaptureError(c *fiber.Ctx, err error) {
	hub := sentryHub(c)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", GetRequestID(c))
		scope.SetTag("path", c.Path())
		hub.CaptureException(err)
	})
}

func sentryHub(c *fiber.Ctx) *sentry.Hub {
	if hub, ok := c.Locals(localsSentryHub).(*sentry.Hub); ok && hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

func requestContext(c *fiber.Ctx) sentry.Context {
	headers := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		switch k := string(key); k {
		case fiber.HeaderAuthorization, fiber.HeaderCookie:
		default:
			headers[k] = string(value)
		}
	})

	return sentry.Context{
		"url":          c.OriginalURL(),
		"method":       c.Method(),
		"headers":      headers,
		"query_string": string(c.Request().URI().QueryString()),
		"remote_addr":  c.IP(),
	}
}
