package dto

import "time"

// DoctorResponse is one practitioner profile.
type DoctorResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty"`
	Rating          float64 `json:"rating"`
	ExperienceYears int     `json:"experience_years"`
	Availability    string  `json:"availability"`
	ConsultationFee float64 `json:"consultation_fee"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
}

// SendConsultationMessageRequest payload.
type SendConsultationMessageRequest struct {
	Content string `json:"content"`
}

// ConsultationSummary response.
type ConsultationSummary struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctor_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConsultationMessageResponse represents one message in a thread.
type ConsultationMessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ConsultationDetailResponse provides the thread with its messages.
type ConsultationDetailResponse struct {
	ID        string                        `json:"id"`
	DoctorID  string                        `json:"doctor_id"`
	CreatedAt time.Time                     `json:"created_at"`
	Messages  []ConsultationMessageResponse `json:"messages"`
}
