package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	"github.com/vyapaarhq/ledger_backend/internal/models"
	"github.com/vyapaarhq/ledger_backend/internal/utils/mapping"
)

type PgxOTPRepository struct {
	BaseRepository
}

// newPgxOTPRepository creates a new repository for login OTP data.
func newPgxOTPRepository(pool *pgxpool.Pool) portsrepo.OTPRepositoryFacade {
	return &PgxOTPRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OTPRepositoryFacade = (*PgxOTPRepository)(nil)

// SaveOTP inserts a freshly issued code.
func (r *PgxOTPRepository) SaveOTP(ctx context.Context, otp domain.LoginOTP) error {
	m := mapping.ToModelLoginOTP(otp)

	query := `
		INSERT INTO login_otps (otp_id, username, code, created_at, expires_at, attempts, consumed)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OTPID,
		m.Username,
		m.Code,
		m.CreatedAt,
		m.ExpiresAt,
		m.Attempts,
		m.Consumed,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert login OTP "+m.OTPID, err)
	}
	return nil
}

// FindLatestByUsername retrieves the most recently issued, unconsumed code.
func (r *PgxOTPRepository) FindLatestByUsername(ctx context.Context, username string) (*domain.LoginOTP, error) {
	query := `
		SELECT otp_id, username, code, created_at, expires_at, attempts, consumed
		FROM login_otps
		WHERE username = $1 AND consumed = FALSE
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var m models.LoginOTP
	err := r.Pool.QueryRow(ctx, query, username).Scan(
		&m.OTPID,
		&m.Username,
		&m.Code,
		&m.CreatedAt,
		&m.ExpiresAt,
		&m.Attempts,
		&m.Consumed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find login OTP for user", err)
	}

	d := mapping.ToDomainLoginOTP(m)
	return &d, nil
}

// IncrementAttempts bumps the failed-guess counter.
func (r *PgxOTPRepository) IncrementAttempts(ctx context.Context, otpID string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE login_otps SET attempts = attempts + 1 WHERE otp_id = $1;`, otpID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to increment OTP attempts for "+otpID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("login OTP " + otpID + " not found")
	}
	return nil
}

// MarkConsumed invalidates the code after successful verification.
func (r *PgxOTPRepository) MarkConsumed(ctx context.Context, otpID string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE login_otps SET consumed = TRUE WHERE otp_id = $1;`, otpID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark OTP consumed for "+otpID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("login OTP " + otpID + " not found")
	}
	return nil
}

// DeleteExpired evicts codes whose expiry is before the cutoff.
func (r *PgxOTPRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM login_otps WHERE expires_at < $1;`, cutoff)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete expired login OTPs", err)
	}
	return cmdTag.RowsAffected(), nil
}
