package scoring

import (
	"testing"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
	"github.com/cardioscope-ai/riskscore/pkg/normalizer"
)

func TestRiskFactorsAllFlagsPresent(t *testing.T) {
	obs := models.PatientObservation{Systolic: 145, Diastolic: 85, Smoker: true}
	codes := normalizer.Codes{Cholesterol: 3, Glucose: 2, Smoker: 1, Active: 0}

	factors := RiskFactors(obs, codes)
	if len(factors) != 5 {
		t.Fatalf("expected 5 factors, got %d: %+v", len(factors), factors)
	}

	seen := make(map[string]string)
	for _, f := range factors {
		if f.Recommendation == "" {
			t.Fatalf("flag %q has no recommendation", f.Flag)
		}
		seen[f.Flag] = f.Recommendation
	}
	for _, flag := range []string{FlagHighBloodPressure, FlagHighCholesterol, FlagHighGlucose, FlagSmoking, FlagInsufficientActivity} {
		if _, ok := seen[flag]; !ok {
			t.Fatalf("expected flag %q", flag)
		}
	}
}

func TestRiskFactorsNoneForHealthyInputs(t *testing.T) {
	obs := models.PatientObservation{Systolic: 118, Diastolic: 76}
	codes := normalizer.Codes{Cholesterol: 1, Glucose: 1, Smoker: 0, Active: 1}

	if factors := RiskFactors(obs, codes); len(factors) != 0 {
		t.Fatalf("expected no factors, got %+v", factors)
	}
}

func TestRiskFactorBloodPressureThresholds(t *testing.T) {
	codes := normalizer.Codes{Cholesterol: 1, Glucose: 1, Active: 1}

	diastolicOnly := models.PatientObservation{Systolic: 130, Diastolic: 90}
	factors := RiskFactors(diastolicOnly, codes)
	if len(factors) != 1 || factors[0].Flag != FlagHighBloodPressure {
		t.Fatalf("diastolic 90 should flag blood pressure, got %+v", factors)
	}

	belowBoth := models.PatientObservation{Systolic: 139, Diastolic: 89}
	if factors := RiskFactors(belowBoth, codes); len(factors) != 0 {
		t.Fatalf("139/89 should not flag, got %+v", factors)
	}
}
