package domain

import "time"

// SessionToken captures metadata about an issued access token. The token itself
// lives with the client; the server reasons only about jti and expiry.
type SessionToken struct {
	JTI       string
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// OTPRecord is the active one-time passcode for an email address. One record
// per email; a new request overwrites the prior code.
type OTPRecord struct {
	Email    string
	Code     string
	IssuedAt time.Time
}
