// Package metrics provides Prometheus metrics recording for internal packages.
// It lives apart from the middleware package so services can record without
// importing HTTP concerns.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation outcomes used as label values
const (
	OutcomeSuccess      = "success"
	OutcomeMissingField = "missing_field"
	OutcomeInvalidField = "invalid_field"
	OutcomeUnsupported  = "unsupported_shape"
	OutcomeInternal     = "internal_error"
	OutcomeError        = "error"
)

var (
	// calculationsTotal counts calculations by shape and outcome
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shapecalc_calculations_total",
			Help: "Total number of shape calculations by outcome",
		},
		[]string{"shape", "outcome"},
	)

	// calculationDuration tracks time spent validating and computing
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shapecalc_calculation_duration_seconds",
			Help:    "Shape calculation duration in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"shape"},
	)
)

// RecordCalculation records the outcome and duration of one calculation
func RecordCalculation(shape, outcome string, duration time.Duration) {
	calculationsTotal.WithLabelValues(shape, outcome).Inc()
	calculationDuration.WithLabelValues(shape).Observe(duration.Seconds())
}

// CalculationCount returns the current counter for a shape and outcome.
// Intended for tests and diagnostics.
func CalculationCount(shape, outcome string) float64 {
	c, err := calculationsTotal.GetMetricWithLabelValues(shape, outcome)
	if err != nil {
		return 0
	}
	return counterValue(c)
}
