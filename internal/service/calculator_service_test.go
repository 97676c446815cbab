package service

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/domain"
	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
	"github.com/shapecalc/shapecalc/internal/pkg/metrics"
	"github.com/shapecalc/shapecalc/internal/testutil"
)

func f(v float64) *float64 { return domain.Float(v) }

func TestCalculatorService_Circle(t *testing.T) {
	svc := NewCalculatorService(zap.NewNop())
	ctx := context.Background()

	t.Run("radius 2", func(t *testing.T) {
		result, err := svc.Circle(ctx, testutil.NewTestCircleInput())

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 12.566370614359172, result.Area)
		require.NotNil(t, result.Circumference)
		assert.Equal(t, 12.566370614359172, *result.Circumference)
		assert.Nil(t, result.Perimeter)
	})

	t.Run("empty input reports missing radius", func(t *testing.T) {
		result, err := svc.Circle(ctx, &domain.ShapeInput{})

		assert.Nil(t, result)
		require.True(t, apperrors.IsMissingField(err))
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, MsgRadiusRequired, appErr.Message)
		assert.Equal(t, []string{"radius"}, appErr.Fields)
	})

	t.Run("nil input is treated as empty", func(t *testing.T) {
		_, err := svc.Circle(ctx, nil)
		assert.True(t, apperrors.IsMissingField(err))
	})

	t.Run("negative radius is invalid", func(t *testing.T) {
		result, err := svc.Circle(ctx, &domain.ShapeInput{Radius: f(-1)})

		assert.Nil(t, result)
		require.True(t, apperrors.IsInvalidField(err))
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, "radius", appErr.Field())
		assert.Equal(t, "-1", appErr.Details["value"])
	})

	t.Run("zero radius is invalid", func(t *testing.T) {
		_, err := svc.Circle(ctx, &domain.ShapeInput{Radius: f(0)})
		assert.True(t, apperrors.IsInvalidField(err))
	})

	t.Run("NaN and infinite radius are invalid", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1)} {
			_, err := svc.Circle(ctx, &domain.ShapeInput{Radius: f(v)})
			assert.True(t, apperrors.IsInvalidField(err), "radius %v", v)
		}
	})

	t.Run("irrelevant fields must still be positive", func(t *testing.T) {
		_, err := svc.Circle(ctx, &domain.ShapeInput{Radius: f(1), Width: f(-4)})

		require.True(t, apperrors.IsInvalidField(err))
		assert.Equal(t, "width", apperrors.GetAppError(err).Field())
	})

	t.Run("overflow is an internal error", func(t *testing.T) {
		result, err := svc.Circle(ctx, &domain.ShapeInput{Radius: f(1e200)})

		assert.Nil(t, result)
		require.True(t, apperrors.IsInternal(err))
		assert.Equal(t, "circle area is not a finite number", apperrors.GetAppError(err).Message)
	})
}

func TestCalculatorService_Rectangle(t *testing.T) {
	svc := NewCalculatorService(zap.NewNop())
	ctx := context.Background()

	t.Run("3 by 4", func(t *testing.T) {
		result, err := svc.Rectangle(ctx, testutil.NewTestRectangleInput())

		require.NoError(t, err)
		assert.Equal(t, 12.0, result.Area)
		require.NotNil(t, result.Perimeter)
		assert.Equal(t, 14.0, *result.Perimeter)
		assert.Nil(t, result.Circumference)
	})

	t.Run("missing width", func(t *testing.T) {
		_, err := svc.Rectangle(ctx, &domain.ShapeInput{Length: f(3)})

		require.True(t, apperrors.IsMissingField(err))
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, MsgLengthAndWidthRequired, appErr.Message)
		assert.Equal(t, []string{"width"}, appErr.Fields)
	})

	t.Run("both missing are reported", func(t *testing.T) {
		_, err := svc.Rectangle(ctx, &domain.ShapeInput{Radius: f(1)})

		require.True(t, apperrors.IsMissingField(err))
		assert.Equal(t, []string{"length", "width"}, apperrors.GetAppError(err).Fields)
	})

	t.Run("missing is reported before invalid", func(t *testing.T) {
		_, err := svc.Rectangle(ctx, &domain.ShapeInput{Length: f(-3)})
		assert.True(t, apperrors.IsMissingField(err))
	})

	t.Run("first invalid field in declaration order", func(t *testing.T) {
		_, err := svc.Rectangle(ctx, &domain.ShapeInput{Length: f(-3), Width: f(0)})

		require.True(t, apperrors.IsInvalidField(err))
		assert.Equal(t, "length", apperrors.GetAppError(err).Field())
	})
}

func TestCalculatorService_Triangle(t *testing.T) {
	svc := NewCalculatorService(zap.NewNop())
	ctx := context.Background()

	t.Run("base 5 height 10", func(t *testing.T) {
		result, err := svc.Triangle(ctx, testutil.NewTestTriangleInput())

		require.NoError(t, err)
		assert.Equal(t, 25.0, result.Area)
		assert.Nil(t, result.Circumference)
		assert.Nil(t, result.Perimeter)
	})

	t.Run("missing height", func(t *testing.T) {
		_, err := svc.Triangle(ctx, &domain.ShapeInput{Base: f(5)})

		require.True(t, apperrors.IsMissingField(err))
		assert.Equal(t, MsgBaseAndHeightRequired, apperrors.GetAppError(err).Message)
	})

	t.Run("negative base", func(t *testing.T) {
		_, err := svc.Triangle(ctx, &domain.ShapeInput{Base: f(-5), Height: f(10)})
		assert.True(t, apperrors.IsInvalidField(err))
	})
}

func TestCalculatorService_Calculate(t *testing.T) {
	svc := NewCalculatorService(nil)
	ctx := context.Background()

	t.Run("unsupported shape", func(t *testing.T) {
		_, err := svc.Calculate(ctx, domain.Shape("hexagon"), &domain.ShapeInput{Radius: f(1)})

		require.True(t, apperrors.IsBadRequest(err))
		assert.Contains(t, err.Error(), "hexagon")
	})

	t.Run("formulas hold for a range of inputs", func(t *testing.T) {
		for _, a := range []float64{0.001, 0.5, 1, 2, 7.25, 1000} {
			for _, b := range []float64{0.01, 1, 3, 99.9} {
				rect, err := svc.Calculate(ctx, domain.ShapeRectangle, &domain.ShapeInput{Length: f(a), Width: f(b)})
				require.NoError(t, err)
				assert.InDelta(t, a*b, rect.Area, 1e-9)
				assert.InDelta(t, 2*(a+b), *rect.Perimeter, 1e-9)

				tri, err := svc.Calculate(ctx, domain.ShapeTriangle, &domain.ShapeInput{Base: f(a), Height: f(b)})
				require.NoError(t, err)
				assert.InDelta(t, 0.5*a*b, tri.Area, 1e-9)
			}

			circle, err := svc.Calculate(ctx, domain.ShapeCircle, &domain.ShapeInput{Radius: f(a)})
			require.NoError(t, err)
			assert.InDelta(t, math.Pi*a*a, circle.Area, 1e-6)
			assert.InDelta(t, 2*math.Pi*a, *circle.Circumference, 1e-9)
		}
	})

	t.Run("records outcome metrics", func(t *testing.T) {
		before := metrics.CalculationCount("triangle", metrics.OutcomeMissingField)

		beforeUnknown := metrics.CalculationCount("unknown", metrics.OutcomeUnsupported)
		beforeInternal := metrics.CalculationCount("circle", metrics.OutcomeInternal)

		_, _ = svc.Calculate(ctx, domain.ShapeTriangle, &domain.ShapeInput{})
		_, _ = svc.Calculate(ctx, domain.Shape("hexagon"), testutil.NewTestCircleInput())
		_, _ = svc.Calculate(ctx, domain.ShapeCircle, &domain.ShapeInput{Radius: f(1e200)})

		assert.Equal(t, before+1, metrics.CalculationCount("triangle", metrics.OutcomeMissingField))
		assert.Equal(t, beforeUnknown+1, metrics.CalculationCount("unknown", metrics.OutcomeUnsupported))
		assert.Equal(t, beforeInternal+1, metrics.CalculationCount("circle", metrics.OutcomeInternal))
	})
}

func TestCalculatorService_Concurrent(t *testing.T) {
	svc := NewCalculatorService(zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 1; i <= 64; i++ {
		wg.Add(1)
		go func(n float64) {
			defer wg.Done()
			result, err := svc.Rectangle(ctx, &domain.ShapeInput{Length: f(n), Width: f(2)})
			if err != nil {
				errs <- err
				return
			}
			if result.Area != n*2 {
				errs <- assert.AnError
			}
		}(float64(i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}
