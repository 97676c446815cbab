package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/domain"
	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
	"github.com/shapecalc/shapecalc/internal/pkg/geometry"
	"github.com/shapecalc/shapecalc/internal/pkg/metrics"
	"github.com/shapecalc/shapecalc/internal/validator"
)

// Messages returned when a shape's required dimensions are absent
const (
	MsgRadiusRequired         = "Radius is required"
	MsgLengthAndWidthRequired = "Length and width are required"
	MsgBaseAndHeightRequired  = "Base and height are required"
)

var missingFieldMessages = map[domain.Shape]string{
	domain.ShapeCircle:    MsgRadiusRequired,
	domain.ShapeRectangle: MsgLengthAndWidthRequired,
	domain.ShapeTriangle:  MsgBaseAndHeightRequired,
}

// CalculatorService validates untrusted dimensions and dispatches them to the
// geometry formulas. It holds no per-request state.
type CalculatorService struct {
	logger *zap.Logger
}

// NewCalculatorService creates a new calculator service
func NewCalculatorService(logger *zap.Logger) *CalculatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorService{logger: logger}
}

// Circle computes area and circumference
func (s *CalculatorService) Circle(ctx context.Context, input *domain.ShapeInput) (*domain.ShapeResult, error) {
	return s.Calculate(ctx, domain.ShapeCircle, input)
}

// Rectangle computes area and perimeter
func (s *CalculatorService) Rectangle(ctx context.Context, input *domain.ShapeInput) (*domain.ShapeResult, error) {
	return s.Calculate(ctx, domain.ShapeRectangle, input)
}

// Triangle computes area
func (s *CalculatorService) Triangle(ctx context.Context, input *domain.ShapeInput) (*domain.ShapeResult, error) {
	return s.Calculate(ctx, domain.ShapeTriangle, input)
}

// Calculate validates input for the given shape and computes its result.
// Either every output of the shape is returned or an error is; never both.
func (s *CalculatorService) Calculate(ctx context.Context, shape domain.Shape, input *domain.ShapeInput) (*domain.ShapeResult, error) {
	start := time.Now()

	result, err := s.calculate(shape, input)

	outcome := outcomeOf(err)
	label := shape.String()
	if !shape.IsValid() {
		label = "unknown"
	}
	metrics.RecordCalculation(label, outcome, time.Since(start))

	if err != nil {
		s.logger.Debug("calculation rejected",
			zap.String("shape", shape.String()),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Debug("calculation completed",
		zap.String("shape", shape.String()),
		zap.Any("result", result.Values()),
	)
	return result, nil
}

func (s *CalculatorService) calculate(shape domain.Shape, input *domain.ShapeInput) (*domain.ShapeResult, error) {
	if !shape.IsValid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unsupported shape %q", shape))
	}
	if input == nil {
		input = &domain.ShapeInput{}
	}

	if missing := input.Missing(shape.RequiredFields()...); len(missing) > 0 {
		return nil, apperrors.MissingField(missingFieldMessages[shape], missing...)
	}

	if err := validateDimensions(input); err != nil {
		return nil, err
	}

	var result *domain.ShapeResult
	switch shape {
	case domain.ShapeCircle:
		c, _ := input.Circle()
		result = circleResult(c)
	case domain.ShapeRectangle:
		r, _ := input.Rectangle()
		result = rectangleResult(r)
	case domain.ShapeTriangle:
		t, _ := input.Triangle()
		result = triangleResult(t)
	}

	if err := checkFinite(shape, result); err != nil {
		return nil, apperrors.InternalComputation(err)
	}
	return result, nil
}

// validateDimensions applies the positivity rule to every present field and
// reports the first violation in declaration order.
func validateDimensions(input *domain.ShapeInput) error {
	err := validator.Validate(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperrors.InternalComputation(fmt.Errorf("validate dimensions: %w", err))
	}

	first := verrs[0]
	value, _ := validator.FloatValue(first.Value)
	return apperrors.InvalidField(first.Field, value)
}

func circleResult(c domain.CircleInput) *domain.ShapeResult {
	return &domain.ShapeResult{
		Area:          geometry.CircleArea(c.Radius),
		Circumference: domain.Float(geometry.CircleCircumference(c.Radius)),
	}
}

func rectangleResult(r domain.RectangleInput) *domain.ShapeResult {
	return &domain.ShapeResult{
		Area:      geometry.RectangleArea(r.Length, r.Width),
		Perimeter: domain.Float(geometry.RectanglePerimeter(r.Length, r.Width)),
	}
}

func triangleResult(t domain.TriangleInput) *domain.ShapeResult {
	return &domain.ShapeResult{
		Area: geometry.TriangleArea(t.Base, t.Height),
	}
}

// checkFinite rejects results that overflowed; they cannot be represented in JSON
func checkFinite(shape domain.Shape, result *domain.ShapeResult) error {
	values := result.Values()
	for _, name := range []string{"area", "circumference", "perimeter"} {
		v, ok := values[name]
		if ok && (math.IsInf(v, 0) || math.IsNaN(v)) {
			return fmt.Errorf("%s %s is not a finite number", shape, name)
		}
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case apperrors.IsMissingField(err):
		return metrics.OutcomeMissingField
	case apperrors.IsInvalidField(err):
		return metrics.OutcomeInvalidField
	case apperrors.IsBadRequest(err):
		return metrics.OutcomeUnsupported
	case apperrors.IsInternal(err):
		return metrics.OutcomeInternal
	default:
		return metrics.OutcomeError
	}
}
