package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind mirrors domain.EntryKind at the persistence layer.
type EntryKind string

const (
	KindStock   EntryKind = "STOCK"
	KindPayment EntryKind = "PAYMENT"
)

// LedgerEntry is one row of the ledger. Stock and payment rows share the
// table; kind-specific columns are nullable and only populated for their kind.
type LedgerEntry struct {
	EntryID        string          `json:"entryID" db:"entry_id"`
	CustomerID     string          `json:"customerID" db:"customer_id"`
	Kind           EntryKind       `json:"kind" db:"kind"`
	EntryDate      time.Time       `json:"entryDate" db:"entry_date"`
	Total          decimal.Decimal `json:"total" db:"total"`
	AmountPaid     decimal.Decimal `json:"amountPaid" db:"amount_paid"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	PaymentStatus  string          `json:"paymentStatus" db:"payment_status"`
	RunningBalance decimal.Decimal `json:"runningBalance" db:"running_balance"`
	Notes          string          `json:"notes" db:"notes"`

	// Stock columns, null for payments.
	QualityType *string          `json:"qualityType,omitempty" db:"quality_type"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty" db:"quantity"`
	Rate        *decimal.Decimal `json:"rate,omitempty" db:"rate"`

	// Payment columns, null for stock.
	PaymentType    *string `json:"paymentType,omitempty" db:"payment_type"`
	BankAccountID  *string `json:"bankAccountID,omitempty" db:"bank_account_id"`
	TransactionRef *string `json:"transactionRef,omitempty" db:"transaction_ref"`

	AuditFields
}
