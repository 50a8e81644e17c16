package models

import (
	"database/sql"
	"time"
)

// User represents an operator of the back office.
type User struct {
	UserID        string `json:"userID" db:"user_id"`
	Username      string `json:"username" db:"username"`
	Email         string `json:"email" db:"email"`
	PhoneNumber   string `json:"phoneNumber" db:"phone_number"`
	PasswordHash  string `json:"-" db:"password_hash"`
	VerifiedEmail bool   `json:"verifiedEmail" db:"verified_email"`
	VerifiedPhone bool   `json:"verifiedPhone" db:"verified_phone"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
