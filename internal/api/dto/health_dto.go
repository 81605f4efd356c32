package dto

import "time"

// HealthCheckRequest payload for a daily health-check submission.
type HealthCheckRequest struct {
	TotalCholesterol  *float64 `json:"total_cholesterol"`
	HDLCholesterol    *float64 `json:"hdl_cholesterol"`
	LDLCholesterol    *float64 `json:"ldl_cholesterol"`
	BloodPressure     *string  `json:"blood_pressure"`
	Weight            *float64 `json:"weight"`
	Height            *float64 `json:"height"`
	DiabetesStatus    *string  `json:"diabetes_status"`
	InjuryDescription *string  `json:"injury_description"`
	Notes             *string  `json:"notes"`
}

// HealthRecordResponse response.
type HealthRecordResponse struct {
	ID                string    `json:"id"`
	TotalCholesterol  *float64  `json:"total_cholesterol,omitempty"`
	HDLCholesterol    *float64  `json:"hdl_cholesterol,omitempty"`
	LDLCholesterol    *float64  `json:"ldl_cholesterol,omitempty"`
	BloodPressure     *string   `json:"blood_pressure,omitempty"`
	Weight            *float64  `json:"weight,omitempty"`
	Height            *float64  `json:"height,omitempty"`
	DiabetesStatus    *string   `json:"diabetes_status,omitempty"`
	InjuryDescription *string   `json:"injury_description,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// PredictionRequest payload for storing a completed prediction. Inference
// runs outside this service; callers submit the outcome together with the
// symptoms it was computed from.
type PredictionRequest struct {
	Symptoms []string `json:"symptoms"`
	Result   string   `json:"result"`
}

// PredictionResponse is one prediction-history entry.
type PredictionResponse struct {
	ID        string    `json:"id"`
	Disease   string    `json:"disease"`
	Symptoms  []string  `json:"symptoms"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
