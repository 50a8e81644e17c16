package repositories

import (
	"context"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// BankAccountRepositoryFacade persists bank accounts and owns the
// single-default-per-customer invariant: SaveBankAccount and SetDefault run
// in a transaction that clears the default flag on siblings first.
type BankAccountRepositoryFacade interface {
	// SaveBankAccount inserts the account. The customer's first account is
	// stored as default regardless of the flag on the value; a later account
	// saved with IsDefault=true demotes the previous default atomically.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// FindBankAccountByID retrieves one account.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccountsByCustomer retrieves all accounts of a customer,
	// default first, then by creation time.
	ListBankAccountsByCustomer(ctx context.Context, customerID string) ([]domain.BankAccount, error)

	// SetDefault marks the account as the customer's default and clears the
	// flag on all siblings in the same transaction.
	SetDefault(ctx context.Context, customerID, bankAccountID, updatedBy string) error
}
