package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// CreateStockEntryItem defines one stock purchase in a batch request.
type CreateStockEntryItem struct {
	EntryDate   time.Time       `json:"entryDate" binding:"required"`
	QualityType string          `json:"qualityType" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	Notes       string          `json:"notes"`
}

// CreateStockEntriesRequest defines a batch of stock entries for one customer.
type CreateStockEntriesRequest struct {
	CustomerID string                 `json:"customerID" binding:"required"`
	Entries    []CreateStockEntryItem `json:"entries" binding:"required,min=1,dive"`
}

// CreatePaymentRequest defines a payment against a customer's outstanding stock.
type CreatePaymentRequest struct {
	CustomerID     string          `json:"customerID" binding:"required"`
	EntryDate      time.Time       `json:"entryDate" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PaymentType    string          `json:"paymentType" binding:"required,paymenttype"`
	BankAccountID  *string         `json:"bankAccountID"`
	TransactionRef *string         `json:"transactionRef"`
	Notes          string          `json:"notes"`
}

// StockDetailsResponse carries the stock payload of a ledger entry.
type StockDetailsResponse struct {
	QualityType string          `json:"qualityType"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// PaymentDetailsResponse carries the payment payload of a ledger entry.
type PaymentDetailsResponse struct {
	PaymentType    string `json:"paymentType"`
	BankAccountID  string `json:"bankAccountID,omitempty"`
	TransactionRef string `json:"transactionRef,omitempty"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID        string                  `json:"entryID"`
	CustomerID     string                  `json:"customerID"`
	Kind           domain.EntryKind        `json:"kind"`
	EntryDate      time.Time               `json:"entryDate"`
	Total          decimal.Decimal         `json:"total"`
	AmountPaid     decimal.Decimal         `json:"amountPaid"`
	Balance        decimal.Decimal         `json:"balance"`
	PaymentStatus  domain.PaymentStatus    `json:"paymentStatus"`
	RunningBalance decimal.Decimal         `json:"runningBalance"`
	Notes          string                  `json:"notes"`
	Stock          *StockDetailsResponse   `json:"stock,omitempty"`
	Payment        *PaymentDetailsResponse `json:"payment,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
}

// AllocationResponse reports one outstanding entry touched by a payment.
type AllocationResponse struct {
	EntryID       string          `json:"entryID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}

// RecordPaymentResponse combines the payment entry with its allocation report.
type RecordPaymentResponse struct {
	Entry             LedgerEntryResponse  `json:"entry"`
	Allocations       []AllocationResponse `json:"allocations"`
	UnallocatedAmount decimal.Decimal      `json:"unallocatedAmount"`
}

// ListEntriesParams defines query parameters for the per-customer entry listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of ledger entries plus the customer's
// total pending balance across all outstanding stock.
type ListEntriesResponse struct {
	Entries      []LedgerEntryResponse `json:"entries"`
	TotalPending decimal.Decimal       `json:"totalPending"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	res := LedgerEntryResponse{
		EntryID:        e.EntryID,
		CustomerID:     e.CustomerID,
		Kind:           e.Kind,
		EntryDate:      e.EntryDate,
		Total:          e.Total,
		AmountPaid:     e.AmountPaid,
		Balance:        e.Balance,
		PaymentStatus:  e.PaymentStatus,
		RunningBalance: e.RunningBalance,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
	if e.Stock != nil {
		res.Stock = &StockDetailsResponse{
			QualityType: e.Stock.QualityType,
			Quantity:    e.Stock.Quantity,
			Rate:        e.Stock.Rate,
		}
	}
	if e.Payment != nil {
		res.Payment = &PaymentDetailsResponse{
			PaymentType:    string(e.Payment.PaymentType),
			BankAccountID:  e.Payment.BankAccountID,
			TransactionRef: e.Payment.TransactionRef,
		}
	}
	return res
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to response DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(&e)
	}
	return res
}

// ToAllocationResponses converts the allocation report to response DTOs.
func ToAllocationResponses(allocations []domain.EntryAllocation) []AllocationResponse {
	res := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		res[i] = AllocationResponse{
			EntryID:       a.EntryID,
			AmountApplied: a.AmountApplied,
			NewBalance:    a.NewBalance,
		}
	}
	return res
}
