package normalizer

import (
	"errors"
	"testing"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
)

func validObservation() models.PatientObservation {
	return models.PatientObservation{
		Name:        "Jane Doe",
		AgeYears:    52,
		Gender:      "female",
		HeightCM:    165,
		WeightKG:    70,
		Systolic:    120,
		Diastolic:   80,
		Cholesterol: "normal",
		Glucose:     "high",
		Smoker:      false,
		Alcohol:     false,
		Active:      true,
	}
}

func TestNormalizeProducesTrainedCodes(t *testing.T) {
	codes, err := Normalize(validObservation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if codes.Gender != 1 {
		t.Fatalf("expected female code 1, got %d", codes.Gender)
	}
	if codes.Cholesterol != 1 {
		t.Fatalf("expected normal cholesterol code 1, got %d", codes.Cholesterol)
	}
	if codes.Glucose != 2 {
		t.Fatalf("expected high glucose code 2, got %d", codes.Glucose)
	}
	if codes.Smoker != 0 || codes.Alcohol != 0 || codes.Active != 1 {
		t.Fatalf("unexpected lifestyle codes: %+v", codes)
	}
}

func TestNormalizeCodeDomains(t *testing.T) {
	genders := map[string]int{"female": 1, "male": 2, "Male": 2, " FEMALE ": 1}
	for value, want := range genders {
		obs := validObservation()
		obs.Gender = value
		codes, err := Normalize(obs)
		if err != nil {
			t.Fatalf("gender %q: unexpected error: %v", value, err)
		}
		if codes.Gender != want {
			t.Fatalf("gender %q: expected %d, got %d", value, want, codes.Gender)
		}
	}

	ordinals := map[string]int{"normal": 1, "high": 2, "very_high": 3, "very-high": 3}
	for value, want := range ordinals {
		obs := validObservation()
		obs.Cholesterol = value
		obs.Glucose = value
		codes, err := Normalize(obs)
		if err != nil {
			t.Fatalf("ordinal %q: unexpected error: %v", value, err)
		}
		if codes.Cholesterol != want || codes.Glucose != want {
			t.Fatalf("ordinal %q: expected %d, got chol=%d gluc=%d", value, want, codes.Cholesterol, codes.Glucose)
		}
	}
}

func TestNormalizeRejectsUnknownCategories(t *testing.T) {
	cases := []func(*models.PatientObservation){
		func(o *models.PatientObservation) { o.Gender = "other" },
		func(o *models.PatientObservation) { o.Gender = "" },
		func(o *models.PatientObservation) { o.Cholesterol = "borderline" },
		func(o *models.PatientObservation) { o.Glucose = "4" },
	}
	for i, mutate := range cases {
		obs := validObservation()
		mutate(&obs)
		_, err := Normalize(obs)
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("case %d: expected ErrInvalidCategory, got %v", i, err)
		}
		if !IsValidationError(err) {
			t.Fatalf("case %d: expected a validation error", i)
		}
	}
}

func TestValidatorRequiresNameWhenPersisting(t *testing.T) {
	obs := validObservation()
	obs.Name = "   "

	if err := NewValidator(true).Validate(obs); err == nil {
		t.Fatal("expected error for blank name with persistence on")
	} else if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	if err := NewValidator(false).Validate(obs); err != nil {
		t.Fatalf("blank name should pass with persistence off: %v", err)
	}
}

func TestValidatorBounds(t *testing.T) {
	cases := map[string]func(*models.PatientObservation){
		"zero age":        func(o *models.PatientObservation) { o.AgeYears = 0 },
		"age too high":    func(o *models.PatientObservation) { o.AgeYears = 121 },
		"zero height":     func(o *models.PatientObservation) { o.HeightCM = 0 },
		"zero weight":     func(o *models.PatientObservation) { o.WeightKG = 0 },
		"zero systolic":   func(o *models.PatientObservation) { o.Systolic = 0 },
		"inverted bp":     func(o *models.PatientObservation) { o.Systolic = 70; o.Diastolic = 80 },
		"chest pain code": func(o *models.PatientObservation) { cp := 4; o.ChestPainType = &cp },
		"slope code":      func(o *models.PatientObservation) { sl := 3; o.Slope = &sl },
	}
	v := NewValidator(false)
	for name, mutate := range cases {
		obs := validObservation()
		mutate(&obs)
		err := v.Validate(obs)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !IsValidationError(err) {
			t.Fatalf("%s: expected a validation error, got %v", name, err)
		}
	}

	if err := v.Validate(validObservation()); err != nil {
		t.Fatalf("valid observation rejected: %v", err)
	}
}
