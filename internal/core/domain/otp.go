package domain

import "time"

// LoginOTP is one issued one-time password, keyed by username with an
// explicit expiry. Verification consumes it; Attempts counts failed guesses.
type LoginOTP struct {
	OTPID     string    `json:"otpID"`
	Username  string    `json:"username"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
	Consumed  bool      `json:"consumed"`
}

// Expired reports whether the OTP is past its expiry at the given instant.
func (o *LoginOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
