package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/dto"
	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
)

const defaultStackSize = 8 << 10

// RecoverConfig configures the recover middleware
type RecoverConfig struct {
	Logger *zap.Logger
	// StackSize caps the stack bytes attached to the log entry
	StackSize int
	// SentryEnabled reports recovered panics through the request hub
	SentryEnabled bool
}

// DefaultRecoverConfig returns default recover config
func DefaultRecoverConfig(logger *zap.Logger) RecoverConfig {
	return RecoverConfig{Logger: logger, StackSize: defaultStackSize}
}

// RecoverMiddleware turns panics into 500 responses
type RecoverMiddleware struct {
	config RecoverConfig
}

// NewRecoverMiddleware creates a new recover middleware
func NewRecoverMiddleware(config RecoverConfig) *RecoverMiddleware {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.StackSize <= 0 {
		config.StackSize = defaultStackSize
	}
	return &RecoverMiddleware{config: config}
}

// Handler returns the recover handler
func (m *RecoverMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = m.handlePanic(c, r)
			}
		}()
		return c.Next()
	}
}

func (m *RecoverMiddleware) handlePanic(c *fiber.Ctx, r any) error {
	stack := debug.Stack()
	if len(stack) > m.config.StackSize {
		stack = stack[:m.config.StackSize]
	}

	m.config.Logger.Error("panic recovered",
		zap.Error(panicToError(r)),
		zap.String("request_id", GetRequestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("stack", string(stack)),
	)

	if m.config.SentryEnabled {
		hub := sentryHub(c)
		hub.Scope().SetLevel(sentry.LevelFatal)
		hub.Scope().SetExtra("stack_trace", string(stack))
		if id := hub.RecoverWithContext(c.Context(), r); id != nil {
			m.config.Logger.Debug("panic reported", zap.String("event_id", string(*id)))
		}
	}

	return dto.WriteError(c, apperrors.Internal("Internal server error"))
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
