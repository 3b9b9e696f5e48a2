package scoring

import (
	"github.com/cardioscope-ai/riskscore/pkg/common/models"
	"github.com/cardioscope-ai/riskscore/pkg/normalizer"
)

const (
	FlagHighBloodPressure    = "high blood pressure"
	FlagHighCholesterol      = "high cholesterol"
	FlagHighGlucose          = "high glucose"
	FlagSmoking              = "smoking"
	FlagInsufficientActivity = "insufficient activity"
)

var recommendations = map[string]string{
	FlagHighBloodPressure:    "Blood pressure is elevated; have it reviewed by a clinician and monitor it regularly.",
	FlagHighCholesterol:      "Cholesterol is above normal; consider a lipid panel and dietary changes.",
	FlagHighGlucose:          "Glucose is above normal; screening for diabetes is recommended.",
	FlagSmoking:              "Smoking sharply raises cardiovascular risk; a cessation program is strongly advised.",
	FlagInsufficientActivity: "Physical activity is below recommended levels; aim for 150 minutes of moderate exercise weekly.",
}

// RiskFactors derives rule-based flags straight from the raw inputs. This is
// deliberately independent of the learned model's probability: the thresholds
// are clinical business rules that change on their own cadence.
func RiskFactors(obs models.PatientObservation, codes normalizer.Codes) []models.RiskFactor {
	var factors []models.RiskFactor
	add := func(flag string) {
		factors = append(factors, models.RiskFactor{Flag: flag, Recommendation: recommendations[flag]})
	}

	if obs.Systolic >= 140 || obs.Diastolic >= 90 {
		add(FlagHighBloodPressure)
	}
	if codes.Cholesterol >= 2 {
		add(FlagHighCholesterol)
	}
	if codes.Glucose >= 2 {
		add(FlagHighGlucose)
	}
	if codes.Smoker == 1 {
		add(FlagSmoking)
	}
	if codes.Active == 0 {
		add(FlagInsufficientActivity)
	}
	return factors
}
