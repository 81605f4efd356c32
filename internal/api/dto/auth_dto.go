package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	History         string  `json:"history"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for partial profile edits. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Age             *int    `json:"age"`
	Gender          *string `json:"gender"`
	History         *string `json:"history"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResponse is the authenticated user's own record. The password hash
// never appears here.
type ProfileResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	History         string    `json:"history"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	Role            string    `json:"role"`
	EmailVerified   bool      `json:"email_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// SendOTPRequest payload.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest payload.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}
