package dto

import "time"

// AdminUserResponse is an account as seen by an admin.
type AdminUserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// PlatformStatsResponse summarizes platform activity.
type PlatformStatsResponse struct {
	TotalUsers       int64 `json:"total_users"`
	TotalPredictions int64 `json:"total_predictions"`
	RecentSignups    int64 `json:"recent_signups"`
}
