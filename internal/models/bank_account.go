package models

// BankAccount represents a payout destination belonging to a customer.
// At most one account per customer carries is_default = true.
type BankAccount struct {
	BankAccountID     string `json:"bankAccountID" db:"bank_account_id"`
	CustomerID        string `json:"customerID" db:"customer_id"`
	AccountHolderName string `json:"accountHolderName" db:"account_holder_name"`
	BankName          string `json:"bankName" db:"bank_name"`
	AccountNumber     string `json:"accountNumber" db:"account_number"`
	IFSCCode          string `json:"ifscCode" db:"ifsc_code"`
	IsActive          bool   `json:"isActive" db:"is_active"`
	IsDefault         bool   `json:"isDefault" db:"is_default"`
	AuditFields
}
