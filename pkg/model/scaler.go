package model

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrInference      = errors.New("model inference failed")
)

// Scaler is a pre-fit standardization transform: per-feature mean and scale
// captured during offline training. It is loaded once and never mutated.
type Scaler struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

func (s *Scaler) FeatureCount() int {
	return len(s.Mean)
}

func (s *Scaler) validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no parameters: %w", ErrSchemaMismatch)
	}
	if len(s.Scale) != len(s.Mean) {
		return fmt.Errorf("scaler mean/scale lengths disagree (%d vs %d): %w", len(s.Mean), len(s.Scale), ErrSchemaMismatch)
	}
	if len(s.FeatureNames) > 0 && len(s.FeatureNames) != len(s.Mean) {
		return fmt.Errorf("scaler feature names disagree with parameters (%d vs %d): %w", len(s.FeatureNames), len(s.Mean), ErrSchemaMismatch)
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("scaler feature %d has zero scale: %w", i, ErrSchemaMismatch)
		}
	}
	return nil
}

// Transform applies (x - mean) / scale element-wise. A vector whose length
// disagrees with the fitted feature count is a hard error, never broadcast
// or truncated.
func (s *Scaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Mean) {
		return nil, fmt.Errorf("vector has %d features, scaler fit on %d: %w", len(vector), len(s.Mean), ErrSchemaMismatch)
	}
	scaled := make([]float64, len(vector))
	for i, x := range vector {
		scaled[i] = (x - s.Mean[i]) / s.Scale[i]
	}
	return scaled, nil
}
