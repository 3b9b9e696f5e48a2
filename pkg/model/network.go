package model

import (
	"fmt"
	"math"
)

// Network is a pre-trained feed-forward classifier. Weights come from an
// offline training process and are treated as an opaque artifact: one forward
// evaluation per call, no mutation.
type Network struct {
	Layers []Layer `json:"layers"`
}

type Layer struct {
	Weights    [][]float64 `json:"weights"` // [output][input]
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"` // relu, sigmoid, linear
}

func (n *Network) InputSize() int {
	if len(n.Layers) == 0 || len(n.Layers[0].Weights) == 0 {
		return 0
	}
	return len(n.Layers[0].Weights[0])
}

func (n *Network) validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers: %w", ErrInference)
	}
	inputs := n.InputSize()
	if inputs == 0 {
		return fmt.Errorf("network first layer is empty: %w", ErrInference)
	}
	for li, layer := range n.Layers {
		if len(layer.Weights) != len(layer.Bias) {
			return fmt.Errorf("layer %d has %d rows but %d biases: %w", li, len(layer.Weights), len(layer.Bias), ErrInference)
		}
		for ri, row := range layer.Weights {
			if len(row) != inputs {
				return fmt.Errorf("layer %d row %d expects %d inputs, got %d: %w", li, ri, inputs, len(row), ErrInference)
			}
		}
		switch layer.Activation {
		case "relu", "sigmoid", "linear":
		default:
			return fmt.Errorf("layer %d has unknown activation '%s': %w", li, layer.Activation, ErrInference)
		}
		inputs = len(layer.Weights)
	}
	if inputs != 1 {
		return fmt.Errorf("network output width is %d, want 1: %w", inputs, ErrInference)
	}
	return nil
}

// Predict runs a single forward pass and returns a probability in [0,1].
func (n *Network) Predict(vector []float64) (float64, error) {
	if len(vector) != n.InputSize() {
		return 0, fmt.Errorf("vector has %d features, network expects %d: %w", len(vector), n.InputSize(), ErrSchemaMismatch)
	}

	current := vector
	for li, layer := range n.Layers {
		next := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			sum := layer.Bias[j]
			for i, w := range row {
				sum += w * current[i]
			}
			next[j] = activate(layer.Activation, sum)
		}
		if len(next) == 0 {
			return 0, fmt.Errorf("layer %d produced no output: %w", li, ErrInference)
		}
		current = next
	}

	p := current[0]
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("non-finite probability: %w", ErrInference)
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("probability %g outside [0,1]: %w", p, ErrInference)
	}
	return p, nil
}

func activate(name string, x float64) float64 {
	switch name {
	case "relu":
		return math.Max(0, x)
	case "sigmoid":
		return sigmoid(x)
	default:
		return x
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
