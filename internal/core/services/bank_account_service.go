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
)

// bankAccountService manages a customer's payout accounts.
type bankAccountService struct {
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
	customerRepo    portsrepo.CustomerRepositoryFacade
	auditSvc        portssvc.AuditSvcFacade
}

// NewBankAccountService creates a new BankAccountService.
func NewBankAccountService(bankAccountRepo portsrepo.BankAccountRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{
		bankAccountRepo: bankAccountRepo,
		customerRepo:    customerRepo,
		auditSvc:        auditSvc,
	}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// AddBankAccount adds a bank account to a customer. The repository makes the
// customer's first account the default and demotes a previous default when
// the new account asks for the flag.
func (s *bankAccountService) AddBankAccount(ctx context.Context, customerID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID:     uuid.NewString(),
		CustomerID:        customerID,
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		AccountNumber:     req.AccountNumber,
		IFSCCode:          req.IFSCCode,
		IsActive:          true,
		IsDefault:         req.MakeDefault,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankAccountRepo.SaveBankAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save bank account", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	// Re-read to pick up the default flag the repository may have set.
	saved, err := s.bankAccountRepo.FindBankAccountByID(ctx, account.BankAccountID)
	if err != nil {
		logger.Error("Failed to re-read saved bank account", slog.String("error", err.Error()), slog.String("bank_account_id", account.BankAccountID))
		return nil, fmt.Errorf("failed to re-read bank account: %w", err)
	}

	s.auditSvc.RecordAction(ctx, creatorUserID, domain.AuditCreate, "bank_account", saved.BankAccountID, saved)

	logger.Info("Bank account added", slog.String("bank_account_id", saved.BankAccountID), slog.String("customer_id", customerID), slog.Bool("is_default", saved.IsDefault))
	return saved, nil
}

// ListBankAccounts lists a customer's bank accounts, default first.
func (s *bankAccountService) ListBankAccounts(ctx context.Context, customerID string) ([]domain.BankAccount, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	accounts, err := s.bankAccountRepo.ListBankAccountsByCustomer(ctx, customerID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list bank accounts", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

// SetDefaultBankAccount marks one account as the default; the repository
// clears the flag on the customer's other accounts in the same transaction.
func (s *bankAccountService) SetDefaultBankAccount(ctx context.Context, customerID string, bankAccountID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.bankAccountRepo.SetDefault(ctx, customerID, bankAccountID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to set default bank account", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		return fmt.Errorf("failed to set default bank account: %w", err)
	}

	s.auditSvc.RecordAction(ctx, requestingUserID, domain.AuditUpdate, "bank_account", bankAccountID, map[string]bool{"isDefault": true})

	logger.Info("Default bank account changed", slog.String("customer_id", customerID), slog.String("bank_account_id", bankAccountID))
	return nil
}
