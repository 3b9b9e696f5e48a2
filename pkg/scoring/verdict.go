package scoring

import (
	"errors"
	"fmt"
)

type Policy string

const (
	PolicyBinary  Policy = "binary"
	PolicyTernary Policy = "ternary"
)

const (
	LevelHealthy = "healthy"
	LevelAtRisk  = "at_risk"
	LevelLow     = "low"
	LevelMedium  = "medium"
	LevelHigh    = "high"
)

var ErrUnknownPolicy = errors.New("unknown verdict policy")

// Verdict buckets a probability into a discrete risk level. Boundary
// convention: lower bounds are inclusive, so 0.5 is at_risk, 0.4 is medium,
// and 0.7 is high.
func Verdict(probability float64, policy Policy) (string, error) {
	switch policy {
	case PolicyBinary:
		if probability >= 0.5 {
			return LevelAtRisk, nil
		}
		return LevelHealthy, nil
	case PolicyTernary:
		switch {
		case probability >= 0.7:
			return LevelHigh, nil
		case probability >= 0.4:
			return LevelMedium, nil
		default:
			return LevelLow, nil
		}
	default:
		return "", fmt.Errorf("policy '%s': %w", policy, ErrUnknownPolicy)
	}
}
