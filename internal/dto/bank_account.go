package dto

import (
	"time"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// CreateBankAccountRequest defines the data needed to add a bank account to a customer.
type CreateBankAccountRequest struct {
	AccountHolderName string `json:"accountHolderName" binding:"required"`
	BankName          string `json:"bankName" binding:"required"`
	AccountNumber     string `json:"accountNumber" binding:"required"`
	IFSCCode          string `json:"ifscCode" binding:"required"`
	MakeDefault       bool   `json:"makeDefault"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID     string    `json:"bankAccountID"`
	CustomerID        string    `json:"customerID"`
	AccountHolderName string    `json:"accountHolderName"`
	BankName          string    `json:"bankName"`
	AccountNumber     string    `json:"accountNumber"`
	IFSCCode          string    `json:"ifscCode"`
	IsActive          bool      `json:"isActive"`
	IsDefault         bool      `json:"isDefault"`
	CreatedAt         time.Time `json:"createdAt"`
	CreatedBy         string    `json:"createdBy"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy     string    `json:"lastUpdatedBy"`
}

// ListBankAccountsResponse wraps the bank accounts of a customer.
type ListBankAccountsResponse struct {
	BankAccounts []BankAccountResponse `json:"bankAccounts"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse DTO.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:     b.BankAccountID,
		CustomerID:        b.CustomerID,
		AccountHolderName: b.AccountHolderName,
		BankName:          b.BankName,
		AccountNumber:     b.AccountNumber,
		IFSCCode:          b.IFSCCode,
		IsActive:          b.IsActive,
		IsDefault:         b.IsDefault,
		CreatedAt:         b.CreatedAt,
		CreatedBy:         b.CreatedBy,
		LastUpdatedAt:     b.LastUpdatedAt,
		LastUpdatedBy:     b.LastUpdatedBy,
	}
}

// ToListBankAccountResponse converts a slice of domain.BankAccount to its wrapper DTO.
func ToListBankAccountResponse(accounts []domain.BankAccount) ListBankAccountsResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i, b := range accounts {
		res[i] = ToBankAccountResponse(&b)
	}
	return ListBankAccountsResponse{BankAccounts: res}
}
