package features

// Derived metrics are pure arithmetic over already-validated vitals. Height
// and pressures are bounds-checked at the input boundary, not here.

func BMI(heightCM, weightKG float64) float64 {
	heightM := heightCM / 100
	return weightKG / (heightM * heightM)
}

func PulsePressure(systolic, diastolic float64) float64 {
	return systolic - diastolic
}

func MeanArterialPressure(systolic, diastolic float64) float64 {
	return (systolic + 2*diastolic) / 3
}
