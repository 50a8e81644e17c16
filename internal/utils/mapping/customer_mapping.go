package mapping

import (
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:    d.CustomerID,
		Name:          d.Name,
		PhoneNumber:   d.PhoneNumber,
		Email:         d.Email,
		Address:       d.Address,
		GSTNumber:     d.GSTNumber,
		PANNumber:     d.PANNumber,
		AadhaarNumber: d.AadhaarNumber,
		CompanyName:   d.CompanyName,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:    m.CustomerID,
		Name:          m.Name,
		PhoneNumber:   m.PhoneNumber,
		Email:         m.Email,
		Address:       m.Address,
		GSTNumber:     m.GSTNumber,
		PANNumber:     m.PANNumber,
		AadhaarNumber: m.AadhaarNumber,
		CompanyName:   m.CompanyName,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomers converts a slice of model Customers to domain Customers
func ToDomainCustomers(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
