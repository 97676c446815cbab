// Package testutil provides shared test utilities for the Shapes Calculator.
package testutil

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"

	"github.com/shapecalc/shapecalc/internal/domain"
	"github.com/shapecalc/shapecalc/internal/middleware"
)

// MockCalculator mocks the calculator service
type MockCalculator struct {
	mock.Mock
}

// Calculate records the call and returns the configured result
func (m *MockCalculator) Calculate(ctx context.Context, shape domain.Shape, input *domain.ShapeInput) (*domain.ShapeResult, error) {
	args := m.Called(ctx, shape, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShapeResult), args.Error(1)
}

// TestRequestIDMiddleware creates a middleware that sets a fixed request ID in context.
// Use this in tests that assert on logged or reported request IDs.
func TestRequestIDMiddleware(requestID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalsRequestID, requestID)
		return c.Next()
	}
}
