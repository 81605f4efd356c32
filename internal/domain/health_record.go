package domain

import "time"

// HealthRecord is a single daily health-check submission.
type HealthRecord struct {
	ID                string
	UserID            string
	TotalCholesterol  *float64
	HDLCholesterol    *float64
	LDLCholesterol    *float64
	BloodPressure     *string
	Weight            *float64
	Height            *float64
	DiabetesStatus    *string
	InjuryDescription *string
	Notes             *string
	SubmittedAt       time.Time
}

// Prediction is a stored disease-prediction result shown in user history.
type Prediction struct {
	ID        string
	UserID    string
	Disease   string
	Symptoms  []string
	Result    string
	CreatedAt time.Time
}
