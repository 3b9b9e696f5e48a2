package features

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
	"github.com/cardioscope-ai/riskscore/pkg/normalizer"
)

var ErrIncompleteVector = errors.New("incomplete feature vector")

// Assemble flattens an observation and its normalized codes into a named
// feature map. Clinical fields appear only when supplied, so a schema that
// needs them surfaces their absence through BuildVector instead of scoring a
// silently defaulted value.
func Assemble(obs models.PatientObservation, codes normalizer.Codes, withDerived bool) map[string]float64 {
	values := map[string]float64{
		FeatureAge:         float64(obs.AgeYears),
		FeatureGender:      float64(codes.Gender),
		FeatureHeight:      obs.HeightCM,
		FeatureWeight:      obs.WeightKG,
		FeatureSystolic:    obs.Systolic,
		FeatureDiastolic:   obs.Diastolic,
		FeatureCholesterol: float64(codes.Cholesterol),
		FeatureGlucose:     float64(codes.Glucose),
		FeatureSmoker:      float64(codes.Smoker),
		FeatureAlcohol:     float64(codes.Alcohol),
		FeatureActive:      float64(codes.Active),
		// Clinical artifacts were fit on 0/1 sex, not the 1/2 gender code.
		FeatureSex: float64(codes.Gender - 1),
	}

	if withDerived {
		values[FeatureBMI] = BMI(obs.HeightCM, obs.WeightKG)
		values[FeaturePulsePressure] = PulsePressure(obs.Systolic, obs.Diastolic)
		values[FeatureMAP] = MeanArterialPressure(obs.Systolic, obs.Diastolic)
	}

	if obs.ChestPainType != nil {
		values[FeatureChestPain] = float64(*obs.ChestPainType)
	}
	if obs.FastingBloodSugar != nil {
		values[FeatureFastingBS] = boolFeature(*obs.FastingBloodSugar)
	}
	if obs.RestECG != nil {
		values[FeatureRestECG] = float64(*obs.RestECG)
	}
	if obs.MaxHeartRate != nil {
		values[FeatureMaxHR] = *obs.MaxHeartRate
	}
	if obs.ExerciseAngina != nil {
		values[FeatureExerciseAngina] = boolFeature(*obs.ExerciseAngina)
	}
	if obs.Oldpeak != nil {
		values[FeatureOldpeak] = *obs.Oldpeak
	}
	if obs.Slope != nil {
		values[FeatureSlope] = float64(*obs.Slope)
	}

	return values
}

// BuildVector emits the ordered vector the schema's artifact pair expects.
// Any missing slot aborts the build; partial vectors are never produced.
func BuildVector(schema Schema, values map[string]float64) ([]float64, error) {
	vector := make([]float64, len(schema.Features))
	var missing []string
	for i, name := range schema.Features {
		value, ok := values[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		vector[i] = value
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("schema %s missing [%s]: %w", schema.Name, strings.Join(missing, ", "), ErrIncompleteVector)
	}
	return vector, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
