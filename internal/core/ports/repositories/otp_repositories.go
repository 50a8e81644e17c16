package repositories

import (
	"context"
	"time"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// OTPRepositoryFacade is the keyed one-time-password store. Codes live in
// the database with an explicit expiry instead of process-global state, so
// restarts and multiple instances behave the same way.
type OTPRepositoryFacade interface {
	// SaveOTP inserts a freshly issued code.
	SaveOTP(ctx context.Context, otp domain.LoginOTP) error

	// FindLatestByUsername retrieves the most recently issued, unconsumed
	// code for the username. Returns apperrors.ErrNotFound when none exists.
	FindLatestByUsername(ctx context.Context, username string) (*domain.LoginOTP, error)

	// IncrementAttempts bumps the failed-guess counter.
	IncrementAttempts(ctx context.Context, otpID string) error

	// MarkConsumed invalidates the code after successful verification.
	MarkConsumed(ctx context.Context, otpID string) error

	// DeleteExpired evicts codes whose expiry is before the cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
