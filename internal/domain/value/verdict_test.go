package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"churnscore/internal/domain/value"
)

func TestThresholdClassify(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name        string
		threshold   value.Threshold
		probability float64
		verdict     value.Verdict
	}{
		{name: "Exactly at default threshold", threshold: value.DefaultThreshold, probability: 0.5, verdict: value.VerdictLikely},
		{name: "Just below", threshold: value.DefaultThreshold, probability: 0.4999999, verdict: value.VerdictUnlikely},
		{name: "Certain churn", threshold: value.DefaultThreshold, probability: 1, verdict: value.VerdictLikely},
		{name: "Certain stay", threshold: value.DefaultThreshold, probability: 0, verdict: value.VerdictUnlikely},
		{name: "Custom threshold", threshold: 0.3, probability: 0.31, verdict: value.VerdictLikely},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.verdict, tc.threshold.Classify(tc.probability))
		})
	}
}

func TestNewThreshold(t *testing.T) {
	rq := require.New(t)

	th, err := value.NewThreshold(0.65)
	rq.NoError(err)
	rq.InDelta(0.65, th.Float64(), 1e-12)

	for _, invalid := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err = value.NewThreshold(invalid)
		rq.Error(err, "threshold %v", invalid)
	}
}

func TestVerdictSentence(t *testing.T) {
	rq := require.New(t)

	rq.Equal(
		"The customer is likely to churn with a probability of 0.73",
		value.VerdictLikely.Sentence(0.7261),
	)
	rq.Equal(
		"The customer is unlikely to churn with a probability of 0.12",
		value.VerdictUnlikely.Sentence(0.12),
	)

	rq.True(value.VerdictLikely.IsLikely())
	rq.False(value.VerdictUnlikely.IsLikely())
}
