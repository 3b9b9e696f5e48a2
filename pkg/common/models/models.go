package models

import (
	"time"
)

// PatientObservation is one submitted set of vitals. It is immutable once
// validated and discarded after scoring unless history persistence is on.
type PatientObservation struct {
	Name        string  `json:"name,omitempty"`
	AgeYears    int     `json:"age_years"`
	Gender      string  `json:"gender"`      // female, male
	HeightCM    float64 `json:"height_cm"`
	WeightKG    float64 `json:"weight_kg"`
	Systolic    float64 `json:"systolic"`
	Diastolic   float64 `json:"diastolic"`
	Cholesterol string  `json:"cholesterol"` // normal, high, very_high
	Glucose     string  `json:"glucose"`     // normal, high, very_high
	Smoker      bool    `json:"smoker"`
	Alcohol     bool    `json:"alcohol"`
	Active      bool    `json:"active"`

	// Clinical-schema fields, only consulted by heart-clinical-v1.
	ChestPainType     *int     `json:"chest_pain_type,omitempty"`     // 0-3
	FastingBloodSugar *bool    `json:"fasting_blood_sugar,omitempty"` // >120 mg/dl
	RestECG           *int     `json:"rest_ecg,omitempty"`            // 0-2
	MaxHeartRate      *float64 `json:"max_heart_rate,omitempty"`
	ExerciseAngina    *bool    `json:"exercise_angina,omitempty"`
	Oldpeak           *float64 `json:"oldpeak,omitempty"`
	Slope             *int     `json:"slope,omitempty"` // 0-2
}

type ScoreRequest struct {
	Schema      string             `json:"schema,omitempty"`
	Observation PatientObservation `json:"observation"`
}

// RiskFactor is a rule-based flag derived from raw inputs, independent of the
// learned model's probability.
type RiskFactor struct {
	Flag           string `json:"flag"`
	Recommendation string `json:"recommendation"`
}

type ScoredResult struct {
	ID                 string       `json:"id"`
	Schema             string       `json:"schema"`
	Probability        float64      `json:"probability"`
	ProbabilityPercent int          `json:"probability_percent"`
	RiskLevel          string       `json:"risk_level"`
	Policy             string       `json:"policy"`
	RiskFactors        []RiskFactor `json:"risk_factors,omitempty"`
	Cached             bool         `json:"cached"`
	ScoredAt           time.Time    `json:"scored_at"`
	LatencyMS          int64        `json:"latency_ms"`
}

// HistoryRecord is one persisted scoring outcome. ID is assigned at append
// time and never changes, so deletes address a stable identity rather than a
// row position.
type HistoryRecord struct {
	ID                 string    `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	Name               string    `json:"name"`
	AgeYears           int       `json:"age_years"`
	Gender             string    `json:"gender"`
	ProbabilityPercent int       `json:"probability_percent"`
	RiskLevel          string    `json:"risk_level"`
}

// Event is the audit payload published to the event bus after each scoring.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}
