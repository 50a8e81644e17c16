package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
	"github.com/vyapaarhq/ledger_backend/internal/platform/config"
	"github.com/vyapaarhq/ledger_backend/internal/utils"
)

// tokenService implements TokenSvcFacade for JWT and refresh tokens.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	return rawRefreshToken, expiryTime, nil
}

// ValidateAndParseRefreshToken validates a refresh token string against the
// user's stored hash and expiry, returning the user when it checks out.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// authService implements the two-step OTP login flow on a database-backed
// OTP store, so restarts and multiple instances share pending codes.
type authService struct {
	cfg     *config.Config
	userSvc portssvc.UserSvcFacade
	otpRepo portsrepo.OTPRepositoryFacade
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade, otpRepo portsrepo.OTPRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:     cfg,
		userSvc: userSvc,
		otpRepo: otpRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// InitiateLogin checks the password and issues a fresh OTP. Calling it again
// before verification reissues a new code; the newest code wins.
func (s *authService) InitiateLogin(ctx context.Context, req dto.LoginRequest) (*dto.LoginInitiatedResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateOTPCode(s.cfg.OTPLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	now := time.Now().UTC()
	otp := domain.LoginOTP{
		OTPID:     uuid.NewString(),
		Username:  user.Username,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.OTPExpiryDuration),
	}
	if err := s.otpRepo.SaveOTP(ctx, otp); err != nil {
		logger.Error("Failed to store login OTP", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store login OTP: %w", err)
	}

	// Opportunistic cleanup of stale codes. Failure only means the next
	// login attempt tries again.
	if _, err := s.otpRepo.DeleteExpired(ctx, now); err != nil {
		logger.Warn("Failed to evict expired OTPs", slog.String("error", err.Error()))
	}

	// Delivery integration (SMS/email) is not wired up; surface the code in
	// the development logs only.
	if !s.cfg.IsProduction {
		logger.Info("Login OTP issued", slog.String("username", user.Username), slog.String("code", code))
	} else {
		logger.Info("Login OTP issued", slog.String("username", user.Username))
	}

	return &dto.LoginInitiatedResponse{
		Message:          "OTP sent",
		ExpiresInSeconds: int(s.cfg.OTPExpiryDuration.Seconds()),
	}, nil
}

// VerifyOTP checks the pending code for the username. A correct code is
// consumed; a wrong one burns an attempt until the attempt cap disables the
// code entirely.
func (s *authService) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	otp, err := s.otpRepo.FindLatestByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to fetch login OTP: %w", err)
	}

	now := time.Now().UTC()
	if otp.Expired(now) {
		return nil, apperrors.ErrOTPExpired
	}
	if otp.Attempts >= s.cfg.OTPMaxAttempts {
		logger.Warn("OTP attempt cap reached", slog.String("username", req.Username))
		return nil, apperrors.ErrUnauthorized
	}
	if otp.Code != req.OTP {
		if err := s.otpRepo.IncrementAttempts(ctx, otp.OTPID); err != nil {
			logger.Error("Failed to increment OTP attempts", slog.String("error", err.Error()))
		}
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.otpRepo.MarkConsumed(ctx, otp.OTPID); err != nil {
		logger.Error("Failed to consume OTP", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to consume OTP: %w", err)
	}

	user, err := s.userSvc.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user after OTP verification: %w", err)
	}

	logger.Info("OTP verified", slog.String("user_id", user.UserID))
	return user, nil
}
