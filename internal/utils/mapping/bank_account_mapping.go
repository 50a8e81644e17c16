package mapping

import (
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:     d.BankAccountID,
		CustomerID:        d.CustomerID,
		AccountHolderName: d.AccountHolderName,
		BankName:          d.BankName,
		AccountNumber:     d.AccountNumber,
		IFSCCode:          d.IFSCCode,
		IsActive:          d.IsActive,
		IsDefault:         d.IsDefault,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:     m.BankAccountID,
		CustomerID:        m.CustomerID,
		AccountHolderName: m.AccountHolderName,
		BankName:          m.BankName,
		AccountNumber:     m.AccountNumber,
		IFSCCode:          m.IFSCCode,
		IsActive:          m.IsActive,
		IsDefault:         m.IsDefault,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankAccounts converts a slice of model BankAccounts to domain BankAccounts
func ToDomainBankAccounts(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankAccount(m)
	}
	return ds
}
