package domain

import "github.com/shopspring/decimal"

// Customer is the aggregation key for the ledger: every entry and bank
// account belongs to exactly one customer.
type Customer struct {
	CustomerID    string `json:"customerID"`
	Name          string `json:"name"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email"`
	Address       string `json:"address,omitempty"`
	GSTNumber     string `json:"gstNumber,omitempty"`
	PANNumber     string `json:"panNumber,omitempty"`
	AadhaarNumber string `json:"aadhaarNumber,omitempty"`
	CompanyName   string `json:"companyName,omitempty"`
	AuditFields
}

// CustomerBalance is the aggregate position of a customer: total stock value
// versus total payments. A negative net balance means the customer has paid
// more than they owe and carries an advance.
type CustomerBalance struct {
	TotalStockAmount decimal.Decimal `json:"totalStockAmount"`
	TotalPayments    decimal.Decimal `json:"totalPayments"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	TotalPending     decimal.Decimal `json:"totalPending"`
	IsAdvance        bool            `json:"isAdvance"`
	AdvanceAmount    decimal.Decimal `json:"advanceAmount"`
}
