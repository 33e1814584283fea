package models

import "time"

// OTP purposes.
const (
	PurposeForgotPassword = "forgot_password"
	PurposeName           = "name"
	PurposePhone          = "phone"
	PurposePassword       = "password"
)

// OTPEntry is an outstanding one-time code.
type OTPEntry struct {
	Code         string    `json:"code"`
	Purpose      string    `json:"purpose"`
	PendingValue string    `json:"pendingValue"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// OTPResult is the outcome of a verification. PendingValue is set only
// when Valid is true.
type OTPResult struct {
	Valid        bool
	PendingValue string
}

// RateLimitResult is the outcome of a rate-limit check.
type RateLimitResult struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}
