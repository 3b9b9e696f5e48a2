package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrMissingField    = errors.New("missing required field")
	ErrOutOfRange      = errors.New("value out of range")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Validator enforces the input boundary: bounds on numeric vitals and the
// required-name rule when scoring results are persisted. It runs before any
// artifact is touched, so a rejected observation leaves no state behind.
type Validator struct {
	requireName bool
}

func NewValidator(requireName bool) *Validator {
	return &Validator{requireName: requireName}
}

func (v *Validator) Validate(obs models.PatientObservation) error {
	if v.requireName && strings.TrimSpace(obs.Name) == "" {
		return ValidationError{reason: fmt.Errorf("name is required before scoring: %w", ErrMissingField)}
	}

	if obs.AgeYears < 1 || obs.AgeYears > 120 {
		return outOfRange("age_years", fmt.Sprintf("%d", obs.AgeYears), "1-120")
	}
	if obs.HeightCM <= 0 || obs.HeightCM > 260 {
		return outOfRange("height_cm", fmt.Sprintf("%g", obs.HeightCM), "(0, 260]")
	}
	if obs.WeightKG <= 0 || obs.WeightKG > 400 {
		return outOfRange("weight_kg", fmt.Sprintf("%g", obs.WeightKG), "(0, 400]")
	}
	if obs.Systolic <= 0 || obs.Systolic > 300 {
		return outOfRange("systolic", fmt.Sprintf("%g", obs.Systolic), "(0, 300]")
	}
	if obs.Diastolic <= 0 || obs.Diastolic > 250 {
		return outOfRange("diastolic", fmt.Sprintf("%g", obs.Diastolic), "(0, 250]")
	}
	if obs.Systolic <= obs.Diastolic {
		return ValidationError{reason: fmt.Errorf("systolic must exceed diastolic: %w", ErrOutOfRange)}
	}

	if obs.ChestPainType != nil && (*obs.ChestPainType < 0 || *obs.ChestPainType > 3) {
		return outOfRange("chest_pain_type", fmt.Sprintf("%d", *obs.ChestPainType), "0-3")
	}
	if obs.RestECG != nil && (*obs.RestECG < 0 || *obs.RestECG > 2) {
		return outOfRange("rest_ecg", fmt.Sprintf("%d", *obs.RestECG), "0-2")
	}
	if obs.Slope != nil && (*obs.Slope < 0 || *obs.Slope > 2) {
		return outOfRange("slope", fmt.Sprintf("%d", *obs.Slope), "0-2")
	}
	if obs.MaxHeartRate != nil && (*obs.MaxHeartRate <= 0 || *obs.MaxHeartRate > 250) {
		return outOfRange("max_heart_rate", fmt.Sprintf("%g", *obs.MaxHeartRate), "(0, 250]")
	}

	return nil
}

func outOfRange(field, value, allowed string) error {
	return ValidationError{reason: fmt.Errorf("%s %s outside %s: %w", field, value, allowed, ErrOutOfRange)}
}
