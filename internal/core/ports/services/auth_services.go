package services

import (
	"context"
	"time"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// AuthSvcFacade defines the two-step OTP login flow.
type AuthSvcFacade interface {
	// InitiateLogin checks the password and issues a fresh OTP for the user.
	// Calling it again before the OTP expires reissues a new code.
	InitiateLogin(ctx context.Context, req dto.LoginRequest) (*dto.LoginInitiatedResponse, error)

	// VerifyOTP checks the pending OTP for the user and, on success, consumes
	// it and returns the authenticated user for token minting.
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*domain.User, error)
}
