package normalizer

import (
	"fmt"
	"strings"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
)

// Codes are the ordinal encodings the models were trained on. Gender is
// {1,2}, cholesterol and glucose are {1,2,3}, lifestyle flags are {0,1}.
// No other values are ever produced.
type Codes struct {
	Gender      int
	Cholesterol int
	Glucose     int
	Smoker      int
	Alcohol     int
	Active      int
}

var genderCodes = map[string]int{
	"female": 1,
	"male":   2,
}

var ordinalCodes = map[string]int{
	"normal":    1,
	"high":      2,
	"very_high": 3,
}

// Normalize maps the observation's categorical fields to their trained codes.
// Values outside the enumerated sets are rejected, they never reach the model.
func Normalize(obs models.PatientObservation) (Codes, error) {
	gender, ok := genderCodes[canonical(obs.Gender)]
	if !ok {
		return Codes{}, invalidCategory("gender", obs.Gender, "female, male")
	}

	cholesterol, ok := ordinalCodes[canonical(obs.Cholesterol)]
	if !ok {
		return Codes{}, invalidCategory("cholesterol", obs.Cholesterol, "normal, high, very_high")
	}

	glucose, ok := ordinalCodes[canonical(obs.Glucose)]
	if !ok {
		return Codes{}, invalidCategory("glucose", obs.Glucose, "normal, high, very_high")
	}

	return Codes{
		Gender:      gender,
		Cholesterol: cholesterol,
		Glucose:     glucose,
		Smoker:      boolCode(obs.Smoker),
		Alcohol:     boolCode(obs.Alcohol),
		Active:      boolCode(obs.Active),
	}, nil
}

func boolCode(b bool) int {
	if b {
		return 1
	}
	return 0
}

func canonical(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	return strings.ReplaceAll(trimmed, "-", "_")
}

func invalidCategory(field, value, allowed string) error {
	return ValidationError{reason: fmt.Errorf("%s '%s' outside enumerated set [%s]: %w", field, value, allowed, ErrInvalidCategory)}
}
