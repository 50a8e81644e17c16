package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	bankAccountRepo := newPgxBankAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	otpRepo := newPgxOTPRepository(dbPool)
	auditLogRepo := newPgxAuditLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CustomerRepo:    customerRepo,
		BankAccountRepo: bankAccountRepo,
		LedgerRepo:      ledgerRepo,
		UserRepo:        userRepo,
		OTPRepo:         otpRepo,
		AuditLogRepo:    auditLogRepo,
	}
}
