package preprocess

import (
	"errors"
	"fmt"
	"math"

	"churnscore/internal/domain"
)

// StandardScaler applies the per-column affine transform fitted at training
// time: (x - mean) / scale.
type StandardScaler struct {
	featureNames []string
	mean         []float64
	scale        []float64
}

func NewStandardScaler(featureNames []string, mean, scale []float64) (StandardScaler, error) {
	if len(featureNames) == 0 {
		return StandardScaler{}, errors.New("scaler: no feature names recorded")
	}

	if len(mean) != len(featureNames) || len(scale) != len(featureNames) {
		return StandardScaler{}, fmt.Errorf(
			"scaler: %d feature names, %d means, %d scales",
			len(featureNames), len(mean), len(scale),
		)
	}

	for i := range featureNames {
		if math.IsNaN(mean[i]) || math.IsInf(mean[i], 0) {
			return StandardScaler{}, fmt.Errorf("scaler: mean of %q is not finite", featureNames[i])
		}

		if scale[i] == 0 || math.IsNaN(scale[i]) || math.IsInf(scale[i], 0) {
			return StandardScaler{}, fmt.Errorf("scaler: scale of %q is %v", featureNames[i], scale[i])
		}
	}

	return StandardScaler{
		featureNames: append([]string(nil), featureNames...),
		mean:         append([]float64(nil), mean...),
		scale:        append([]float64(nil), scale...),
	}, nil
}

// Dim is the number of columns the scaler was fitted on.
func (s StandardScaler) Dim() int {
	return len(s.mean)
}

// FeatureNames is the column order recorded when the scaler was fitted.
func (s StandardScaler) FeatureNames() []string {
	return append([]string(nil), s.featureNames...)
}

// Transform scales x into a new slice; x is left untouched.
func (s StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.mean) {
		return nil, domain.DimensionMismatch("scaler", len(x), len(s.mean))
	}

	scaled := make([]float64, len(x))

	for i, v := range x {
		scaled[i] = (v - s.mean[i]) / s.scale[i]
	}

	return scaled, nil
}
