package services

import (
	"context"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

// BankAccountSvcFacade defines operations on a customer's bank accounts.
type BankAccountSvcFacade interface {
	// AddBankAccount adds a bank account to a customer. The customer's first
	// account becomes the default automatically.
	AddBankAccount(ctx context.Context, customerID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)

	// ListBankAccounts lists a customer's bank accounts, default first.
	ListBankAccounts(ctx context.Context, customerID string) ([]domain.BankAccount, error)

	// SetDefaultBankAccount marks one account as the default and clears the
	// flag on the customer's other accounts in the same transaction.
	SetDefaultBankAccount(ctx context.Context, customerID string, bankAccountID string, requestingUserID string) error
}
