package domain

import "time"

// User is a back-office operator account. Login is password plus OTP; the
// refresh token hash lives on the user row like the access credential it is.
type User struct {
	UserID        string `json:"userID"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	PasswordHash  string `json:"-"`
	VerifiedEmail bool   `json:"verifiedEmail"`
	VerifiedPhone bool   `json:"verifiedPhone"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
