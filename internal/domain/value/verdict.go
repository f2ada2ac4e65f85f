package value

import (
	"fmt"
	"math"
)

// DefaultThreshold is used when the artifact manifest does not record one.
const DefaultThreshold Threshold = 0.5

// Verdict is an immutable value object for the churn decision.
type Verdict struct {
	value string
}

var (
	VerdictLikely   = Verdict{value: "likely"}
	VerdictUnlikely = Verdict{value: "unlikely"}
)

func (v Verdict) String() string {
	return v.value
}

func (v Verdict) IsLikely() bool {
	return v == VerdictLikely
}

// Sentence renders the verdict the way the form shows it.
func (v Verdict) Sentence(probability float64) string {
	return fmt.Sprintf("The customer is %s to churn with a probability of %.2f", v.value, probability)
}

// Threshold cut-point applied to the churn probability. It is a policy of the
// presentation, not a property of the model.
type Threshold float64

func NewThreshold(t float64) (Threshold, error) {
	if math.IsNaN(t) || t <= 0 || t >= 1 {
		return 0, fmt.Errorf("threshold must be in (0, 1), got %v", t)
	}

	return Threshold(t), nil
}

// Classify returns VerdictLikely when probability >= t.
func (t Threshold) Classify(probability float64) Verdict {
	if probability >= float64(t) {
		return VerdictLikely
	}

	return VerdictUnlikely
}

func (t Threshold) Float64() float64 {
	return float64(t)
}
