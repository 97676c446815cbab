package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/domain"
	"github.com/shapecalc/shapecalc/internal/dto"
	"github.com/shapecalc/shapecalc/internal/middleware"
	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
)

// Calculator computes shape results from untrusted input
type Calculator interface {
	Calculate(ctx context.Context, shape domain.Shape, input *domain.ShapeInput) (*domain.ShapeResult, error)
}

// CalculatorHandler handles the shape calculation endpoints
type CalculatorHandler struct {
	calculator Calculator
	logger     *zap.Logger
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(calculator Calculator, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{
		calculator: calculator,
		logger:     logger,
	}
}

// RegisterRoutes registers calculation routes
func (h *CalculatorHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/circle", h.Circle)
	app.Post("/rectangle", h.Rectangle)
	app.Post("/triangle", h.Triangle)
}

// Circle handles POST /circle
func (h *CalculatorHandler) Circle(c *fiber.Ctx) error {
	return h.calculate(c, domain.ShapeCircle)
}

// Rectangle handles POST /rectangle
func (h *CalculatorHandler) Rectangle(c *fiber.Ctx) error {
	return h.calculate(c, domain.ShapeRectangle)
}

// Triangle handles POST /triangle
func (h *CalculatorHandler) Triangle(c *fiber.Ctx) error {
	return h.calculate(c, domain.ShapeTriangle)
}

func (h *CalculatorHandler) calculate(c *fiber.Ctx, shape domain.Shape) error {
	var req dto.ShapeRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return dto.WriteError(c, err)
	}

	result, err := h.calculator.Calculate(c.UserContext(), shape, req.ToInput())
	if err != nil {
		if apperrors.GetStatusCode(err) >= fiber.StatusInternalServerError {
			h.logger.Error("calculation failed",
				zap.String("shape", shape.String()),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			middleware.CaptureError(c, err)
		}
		return dto.WriteError(c, err)
	}

	return c.JSON(result)
}
