package models

import "time"

// LoginOTP is one issued login code. The newest unconsumed row per username
// is the active one; older rows only matter for cleanup.
type LoginOTP struct {
	OTPID     string    `json:"otpID" db:"otp_id"`
	Username  string    `json:"username" db:"username"`
	Code      string    `json:"-" db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Attempts  int       `json:"attempts" db:"attempts"`
	Consumed  bool      `json:"consumed" db:"consumed"`
}
