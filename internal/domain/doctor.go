package domain

import "time"

// Doctor is a consultable practitioner profile.
type Doctor struct {
	ID              string
	Name            string
	Specialty       string
	Rating          float64
	ExperienceYears int
	Availability    string
	ConsultationFee float64
	AvatarURL       *string
	CreatedAt       time.Time
}

// Consultation is a chat thread between a patient and a doctor.
type Consultation struct {
	ID        string
	UserID    string
	DoctorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsultationMessage is one message in a consultation thread.
type ConsultationMessage struct {
	ID             string
	ConsultationID string
	Sender         string
	Content        string
	CreatedAt      time.Time
}
