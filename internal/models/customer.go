package models

// Customer represents a trading party whose purchases and payments are tracked.
type Customer struct {
	CustomerID    string `json:"customerID" db:"customer_id"`
	Name          string `json:"name" db:"name"`
	PhoneNumber   string `json:"phoneNumber" db:"phone_number"`
	Email         string `json:"email" db:"email"`
	Address       string `json:"address" db:"address"`
	GSTNumber     string `json:"gstNumber" db:"gst_number"`
	PANNumber     string `json:"panNumber" db:"pan_number"`
	AadhaarNumber string `json:"aadhaarNumber" db:"aadhaar_number"`
	CompanyName   string `json:"companyName" db:"company_name"`
	AuditFields
}
