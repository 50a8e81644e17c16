package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes a stock purchase from a payment.
type EntryKind string

const (
	KindStock   EntryKind = "STOCK"
	KindPayment EntryKind = "PAYMENT"
)

// PaymentStatus is derived from AmountPaid/Balance and is never set directly:
// Pending while nothing has been applied, Paid once the balance reaches zero,
// Partial in between. Payment entries are always Paid.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusPartial PaymentStatus = "PARTIAL"
	StatusPaid    PaymentStatus = "PAID"
)

// PaymentType is the instrument used for a payment entry.
type PaymentType string

const (
	PaymentCash PaymentType = "CASH"
	PaymentBank PaymentType = "BANK"
	PaymentUPI  PaymentType = "UPI"
)

// StockDetails carries the fields that only exist on stock entries.
type StockDetails struct {
	QualityType string          `json:"qualityType"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// PaymentDetails carries the fields that only exist on payment entries.
// BankAccountID is required when PaymentType is BANK.
type PaymentDetails struct {
	PaymentType    PaymentType `json:"paymentType"`
	BankAccountID  string      `json:"bankAccountID,omitempty"`
	TransactionRef string      `json:"transactionRef,omitempty"`
}

// LedgerEntry is one row of a customer's ledger: either a stock purchase
// (debit) or a payment (credit). The envelope fields are shared; exactly one
// of Stock/Payment is non-nil depending on Kind.
//
// Mutability: for stock entries only AmountPaid, Balance and PaymentStatus
// change after creation (driven by later payment allocations). Everything
// else, and payment entries as a whole, are immutable once persisted.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`
	CustomerID     string          `json:"customerID"`
	Kind           EntryKind       `json:"kind"`
	EntryDate      time.Time       `json:"entryDate"` // Business date of the transaction
	Total          decimal.Decimal `json:"total"`     // Invoice amount (stock) or amount paid (payment)
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	Balance        decimal.Decimal `json:"balance"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Net customer position through this entry
	Notes          string          `json:"notes,omitempty"`
	Stock          *StockDetails   `json:"stock,omitempty"`
	Payment        *PaymentDetails `json:"payment,omitempty"`
	AuditFields
}

// IsOutstanding reports whether a stock entry still carries unpaid balance.
func (e *LedgerEntry) IsOutstanding() bool {
	return e.Kind == KindStock && e.PaymentStatus != StatusPaid
}

// DeriveStatus returns the payment status implied by amountPaid/balance.
func DeriveStatus(amountPaid, balance decimal.Decimal) PaymentStatus {
	switch {
	case balance.IsZero():
		return StatusPaid
	case amountPaid.IsZero():
		return StatusPending
	default:
		return StatusPartial
	}
}

// EntryAllocation records one application of a payment against a stock entry.
type EntryAllocation struct {
	EntryID       string          `json:"entryID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}
