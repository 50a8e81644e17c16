package domain

// BankAccount belongs to exactly one customer. At most one account per
// customer may be the default at any time; the repository clears the flag on
// siblings inside the same transaction that sets it.
type BankAccount struct {
	BankAccountID     string `json:"bankAccountID"`
	CustomerID        string `json:"customerID"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	IsActive          bool   `json:"isActive"`
	IsDefault         bool   `json:"isDefault"`
	AuditFields
}
