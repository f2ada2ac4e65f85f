package entity

import "churnscore/internal/domain/value"

// Prediction outcome of one scoring call. Never persisted.
type Prediction struct {
	Probability float64
	Threshold   value.Threshold
	Verdict     value.Verdict
}

func (p Prediction) Message() string {
	return p.Verdict.Sentence(p.Probability)
}
