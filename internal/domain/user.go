package domain

import "time"

// Role represents the authorization level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain model for platform accounts. PasswordHash is never
// serialized outward; handlers build responses from explicit fields.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Name            string
	Age             int
	Gender          string
	MedicalHistory  string
	ProfileImageURL *string
	Role            Role
	EmailVerified   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
