package services

import (
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since most writing services depend on it
	container.Audit = NewAuditService(repos.AuditLogRepo)

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		repos.CustomerRepo,
		repos.BankAccountRepo,
		container.Audit,
	)
	container.BankAccount = NewBankAccountService(
		repos.BankAccountRepo,
		repos.CustomerRepo,
		container.Audit,
	)
	container.Customer = NewCustomerService(
		repos.CustomerRepo,
		container.Ledger,
		container.BankAccount,
		container.Audit,
	)
	container.Insights = NewInsightsService(repos.LedgerRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.Auth = NewAuthService(cfg, container.User, repos.OTPRepo)

	return container
}
