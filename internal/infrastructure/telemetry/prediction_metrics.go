// Package telemetry exposes prometheus collectors for churn scoring.
package telemetry

import (
	"errors"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"churnscore/internal/domain"
	"churnscore/internal/domain/value"
)

const namespace = "churnscore"

// Error kinds used as label values.
const (
	KindUnknownCategory   = "unknown_category"
	KindDimensionMismatch = "dimension_mismatch"
	KindInvalidInput      = "invalid_input"
	KindInference         = "inference"
)

type PredictionMetrics struct {
	predictions *prometheus.CounterVec
	errors      *prometheus.CounterVec
	probability prometheus.Histogram
	duration    prometheus.Histogram
}

func NewPredictionMetrics(reg prometheus.Registerer) *PredictionMetrics {
	factory := promauto.With(reg)

	return &PredictionMetrics{
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Scoring calls that produced a probability, by verdict.",
		}, []string{"verdict"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Scoring calls that failed, by error kind.",
		}, []string{"kind"}),
		probability: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "churn_probability",
			Help:      "Distribution of predicted churn probabilities.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 9),
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent assembling, scaling and classifying one customer.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

func (m *PredictionMetrics) ObservePrediction(probability float64, verdict value.Verdict, elapsed time.Duration) {
	m.predictions.WithLabelValues(verdict.String()).Inc()
	m.probability.Observe(probability)
	m.duration.Observe(elapsed.Seconds())
}

func (m *PredictionMetrics) ObserveError(err error) {
	m.errors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind maps a scoring error onto a bounded label value.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		return KindUnknownCategory
	case errors.Is(err, domain.ErrDimensionMismatch):
		return KindDimensionMismatch
	case failure.IsInvalidArgumentError(err):
		return KindInvalidInput
	default:
		return KindInference
	}
}
