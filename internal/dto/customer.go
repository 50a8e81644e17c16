package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to register a new customer.
type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	GSTNumber     string `json:"gstNumber"`
	PANNumber     string `json:"panNumber"`
	AadhaarNumber string `json:"aadhaarNumber" binding:"required"`
	CompanyName   string `json:"companyName"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCustomerRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	GSTNumber   *string `json:"gstNumber"`
	PANNumber   *string `json:"panNumber"`
	CompanyName *string `json:"companyName"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string    `json:"customerID"`
	Name          string    `json:"name"`
	PhoneNumber   string    `json:"phoneNumber"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	GSTNumber     string    `json:"gstNumber"`
	PANNumber     string    `json:"panNumber"`
	AadhaarNumber string    `json:"aadhaarNumber"`
	CompanyName   string    `json:"companyName"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SearchCustomersParams defines query parameters for the customer search.
type SearchCustomersParams struct {
	Query string `form:"query"`
	Limit int    `form:"limit,default=100"`
}

// SearchCustomersResponse wraps the search results.
type SearchCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// CustomerBalanceResponse defines the aggregate balance for a customer.
// A negative net balance means the customer has paid in advance.
type CustomerBalanceResponse struct {
	CustomerID       string          `json:"customerID"`
	TotalStockAmount decimal.Decimal `json:"totalStockAmount"`
	TotalPayments    decimal.Decimal `json:"totalPayments"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	TotalPending     decimal.Decimal `json:"totalPending"`
	IsAdvance        bool            `json:"isAdvance"`
	AdvanceAmount    decimal.Decimal `json:"advanceAmount"`
}

// TaxIdentifierResponse groups the customer's tax identifiers for the details view.
type TaxIdentifierResponse struct {
	GSTNumber     string `json:"gstNumber"`
	PANNumber     string `json:"panNumber"`
	AadhaarNumber string `json:"aadhaarNumber"`
}

// CustomerDetailsResponse combines the customer, their tax identifiers,
// bank accounts and aggregate balance.
type CustomerDetailsResponse struct {
	Customer       CustomerResponse        `json:"customer"`
	TaxIdentifiers TaxIdentifierResponse   `json:"taxIdentifiers"`
	BankAccounts   []BankAccountResponse   `json:"bankAccounts"`
	Balance        CustomerBalanceResponse `json:"balance"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		PhoneNumber:   c.PhoneNumber,
		Email:         c.Email,
		Address:       c.Address,
		GSTNumber:     c.GSTNumber,
		PANNumber:     c.PANNumber,
		AadhaarNumber: c.AadhaarNumber,
		CompanyName:   c.CompanyName,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to a slice of CustomerResponse DTOs.
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return res
}

// ToCustomerBalanceResponse converts a domain.CustomerBalance to its DTO.
func ToCustomerBalanceResponse(customerID string, b *domain.CustomerBalance) CustomerBalanceResponse {
	return CustomerBalanceResponse{
		CustomerID:       customerID,
		TotalStockAmount: b.TotalStockAmount,
		TotalPayments:    b.TotalPayments,
		NetBalance:       b.NetBalance,
		TotalPending:     b.TotalPending,
		IsAdvance:        b.IsAdvance,
		AdvanceAmount:    b.AdvanceAmount,
	}
}
