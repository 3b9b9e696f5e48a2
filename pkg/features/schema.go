package features

// Canonical feature slot names. Every schema is an ordered selection of these;
// the order a schema declares is the order its artifact pair was fit on, so it
// is load-bearing and never inferred.
const (
	FeatureAge            = "age_years"
	FeatureGender         = "gender"
	FeatureHeight         = "height_cm"
	FeatureWeight         = "weight_kg"
	FeatureSystolic       = "ap_hi"
	FeatureDiastolic      = "ap_lo"
	FeatureCholesterol    = "cholesterol"
	FeatureGlucose        = "glucose"
	FeatureSmoker         = "smoke"
	FeatureAlcohol        = "alco"
	FeatureActive         = "active"
	FeatureBMI            = "bmi"
	FeaturePulsePressure  = "pulse_pressure"
	FeatureMAP            = "mean_arterial_pressure"
	FeatureSex            = "sex"
	FeatureChestPain      = "chest_pain"
	FeatureFastingBS      = "fasting_blood_sugar"
	FeatureRestECG        = "rest_ecg"
	FeatureMaxHR          = "max_heart_rate"
	FeatureExerciseAngina = "exercise_angina"
	FeatureOldpeak        = "oldpeak"
	FeatureSlope          = "slope"
)

// Schema describes one model/scaler pairing: the ordered feature slots, the
// verdict policy, and the artifact base name the files are stored under.
type Schema struct {
	Name           string   `yaml:"name" json:"name"`
	Features       []string `yaml:"features" json:"features"`
	DerivedMetrics bool     `yaml:"derived_metrics" json:"derived_metrics"`
	Policy         string   `yaml:"policy" json:"policy"` // binary or ternary
	ArtifactBase   string   `yaml:"artifact_base" json:"artifact_base"`
}

func (s Schema) FeatureCount() int {
	return len(s.Features)
}

// Builtins returns the three schemas shipped with the service.
func Builtins() []Schema {
	return []Schema{
		{
			Name: "cardio-lifestyle-v1",
			Features: []string{
				FeatureAge, FeatureGender, FeatureHeight, FeatureWeight,
				FeatureSystolic, FeatureDiastolic, FeatureCholesterol,
				FeatureGlucose, FeatureSmoker, FeatureAlcohol, FeatureActive,
			},
			Policy:       "binary",
			ArtifactBase: "cardio_lifestyle_v1",
		},
		{
			Name: "cardio-extended-v1",
			Features: []string{
				FeatureAge, FeatureGender, FeatureHeight, FeatureWeight,
				FeatureSystolic, FeatureDiastolic, FeatureCholesterol,
				FeatureGlucose, FeatureSmoker, FeatureAlcohol, FeatureActive,
				FeatureBMI, FeaturePulsePressure, FeatureMAP,
			},
			DerivedMetrics: true,
			Policy:         "ternary",
			ArtifactBase:   "cardio_extended_v1",
		},
		{
			Name: "heart-clinical-v1",
			Features: []string{
				FeatureAge, FeatureSex, FeatureChestPain, FeatureSystolic,
				FeatureCholesterol, FeatureFastingBS, FeatureRestECG,
				FeatureMaxHR, FeatureExerciseAngina, FeatureOldpeak, FeatureSlope,
			},
			Policy:       "binary",
			ArtifactBase: "heart_clinical_v1",
		},
	}
}
