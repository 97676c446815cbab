package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// LocalsRequestID is the fiber locals key holding the request ID
const LocalsRequestID = "requestID"

// HeaderRequestID is the default request ID header
const HeaderRequestID = "X-Request-ID"

// RequestIDConfig configures the request ID middleware
type RequestIDConfig struct {
	// Header is the header key for the request ID
	Header string
	// Generator generates a new request ID
	Generator func() string
}

// DefaultRequestIDConfig returns default request ID config
func DefaultRequestIDConfig() RequestIDConfig {
	return RequestIDConfig{
		Header:    HeaderRequestID,
		Generator: uuid.NewString,
	}
}

// RequestID creates a request ID middleware. An incoming ID is kept,
// otherwise one is generated; either way it is echoed on the response.
func RequestID(config ...RequestIDConfig) fiber.Handler {
	cfg := DefaultRequestIDConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Header == "" {
		cfg.Header = HeaderRequestID
	}
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}

	return func(c *fiber.Ctx) error {
		requestID := utils.CopyString(c.Get(cfg.Header))
		if requestID == "" {
			requestID = cfg.Generator()
		}

		c.Set(cfg.Header, requestID)
		c.Locals(LocalsRequestID, requestID)

		return c.Next()
	}
}

// GetRequestID gets the request ID from context
func GetRequestID(c *fiber.Ctx) string {
	if requestID, ok := c.Locals(LocalsRequestID).(string); ok {
		return requestID
	}
	return ""
}
