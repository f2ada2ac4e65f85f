package telemetry_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"churnscore/internal/domain"
	"churnscore/internal/domain/value"
	"churnscore/internal/infrastructure/telemetry"
)

func TestPredictionMetrics(t *testing.T) {
	rq := require.New(t)

	reg := prometheus.NewPedanticRegistry()
	m := telemetry.NewPredictionMetrics(reg)

	m.ObservePrediction(0.7, value.VerdictLikely, time.Millisecond)
	m.ObservePrediction(0.8, value.VerdictLikely, time.Millisecond)
	m.ObservePrediction(0.1, value.VerdictUnlikely, time.Millisecond)
	m.ObserveError(fmt.Errorf("assemble: %w", domain.UnknownCategory("Geography", "Atlantis")))

	count, err := testutil.GatherAndCount(reg, "churnscore_predictions_total")
	rq.NoError(err)
	rq.Equal(2, count)

	count, err = testutil.GatherAndCount(reg, "churnscore_prediction_errors_total")
	rq.NoError(err)
	rq.Equal(1, count)

	rq.NoError(testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP churnscore_prediction_errors_total Scoring calls that failed, by error kind.
# TYPE churnscore_prediction_errors_total counter
churnscore_prediction_errors_total{kind="unknown_category"} 1
`), "churnscore_prediction_errors_total"))
}

func TestErrorKind(t *testing.T) {
	rq := require.New(t)

	rq.Equal(telemetry.KindUnknownCategory, telemetry.ErrorKind(domain.UnknownCategory("Gender", "x")))
	rq.Equal(telemetry.KindDimensionMismatch, telemetry.ErrorKind(domain.DimensionMismatch("scaler", 1, 2)))
	rq.Equal(telemetry.KindInvalidInput, telemetry.ErrorKind(failure.NewInvalidArgumentError("age out of range")))
	rq.Equal(telemetry.KindInference, telemetry.ErrorKind(errors.New("connection refused")))
}
