// Package ann evaluates the feed-forward network exported from the trained
// Keras model.
package ann

import (
	"context"
	"errors"
	"fmt"
	"math"

	"churnscore/internal/domain"
)

const FormatDenseV1 = "dense-v1"

type Activation string

const (
	ActivationLinear  Activation = "linear"
	ActivationReLU    Activation = "relu"
	ActivationSigmoid Activation = "sigmoid"
	ActivationTanh    Activation = "tanh"
)

func (a Activation) apply(x float64) (float64, error) {
	switch a {
	case ActivationLinear, "":
		return x, nil
	case ActivationReLU:
		return math.Max(0, x), nil
	case ActivationSigmoid:
		return 1 / (1 + math.Exp(-x)), nil
	case ActivationTanh:
		return math.Tanh(x), nil
	default:
		return 0, fmt.Errorf("unsupported activation %q", a)
	}
}

// Layer is a dense layer. Kernel has one row per input and one column per
// unit, the layout Keras uses.
type Layer struct {
	Units      int         `json:"units"`
	Activation Activation  `json:"activation"`
	Kernel     [][]float64 `json:"kernel"`
	Bias       []float64   `json:"bias"`
}

// Spec is the JSON form of the exported model.
type Spec struct {
	Format   string  `json:"format"`
	InputDim int     `json:"input_dim"`
	Layers   []Layer `json:"layers"`
}

// Network is an immutable, validated stack of dense layers ending in a single
// probability unit. It is safe for concurrent use.
type Network struct {
	inputDim int
	layers   []Layer
}

func NewNetwork(spec Spec) (*Network, error) {
	if spec.Format != FormatDenseV1 {
		return nil, fmt.Errorf("unsupported model format %q", spec.Format)
	}

	if spec.InputDim <= 0 {
		return nil, fmt.Errorf("input_dim must be positive, got %d", spec.InputDim)
	}

	if len(spec.Layers) == 0 {
		return nil, errors.New("model has no layers")
	}

	width := spec.InputDim

	for i, l := range spec.Layers {
		if err := validateLayer(l, width); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}

		width = l.Units
	}

	if width != 1 {
		return nil, fmt.Errorf("output layer must have 1 unit, got %d", width)
	}

	return &Network{
		inputDim: spec.InputDim,
		layers:   spec.Layers,
	}, nil
}

func validateLayer(l Layer, inputs int) error {
	if l.Units <= 0 {
		return fmt.Errorf("units must be positive, got %d", l.Units)
	}

	if _, err := l.Activation.apply(0); err != nil {
		return err
	}

	if len(l.Kernel) != inputs {
		return fmt.Errorf("kernel has %d rows, want %d", len(l.Kernel), inputs)
	}

	for r, row := range l.Kernel {
		if len(row) != l.Units {
			return fmt.Errorf("kernel row %d has %d columns, want %d", r, len(row), l.Units)
		}
	}

	if len(l.Bias) != l.Units {
		return fmt.Errorf("bias has %d values, want %d", len(l.Bias), l.Units)
	}

	return nil
}

// InputDim is the width of the vector the network accepts.
func (n *Network) InputDim() int {
	return n.inputDim
}

// Predict runs a forward pass and returns the output unit.
func (n *Network) Predict(_ context.Context, x []float64) (float64, error) {
	if len(x) != n.inputDim {
		return 0, domain.DimensionMismatch("model input", len(x), n.inputDim)
	}

	activations := x

	for _, l := range n.layers {
		out := make([]float64, l.Units)

		for u := range l.Units {
			sum := l.Bias[u]

			for i, a := range activations {
				sum += a * l.Kernel[i][u]
			}

			v, err := l.Activation.apply(sum)
			if err != nil {
				return 0, err
			}

			out[u] = v
		}

		activations = out
	}

	return activations[0], nil
}
