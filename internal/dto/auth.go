package dto

// LoginRequest carries the username/password step of login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginInitiatedResponse tells the client an OTP has been issued.
type LoginInitiatedResponse struct {
	Message          string `json:"message"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}

// VerifyOTPRequest carries the OTP verification step of login.
type VerifyOTPRequest struct {
	Username string `json:"username" binding:"required"`
	OTP      string `json:"otp" binding:"required,len=6,numeric"`
}

// RefreshTokenRequest carries an explicit refresh token when the
// refresh cookie is unavailable.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}
