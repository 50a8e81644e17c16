package repositories

import (
	"context"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByAadhaar retrieves a customer by aadhaar number, used for
	// the duplicate check on creation.
	FindCustomerByAadhaar(ctx context.Context, aadhaarNumber string) (*domain.Customer, error)

	// SearchCustomers matches the query against name, email, phone, company,
	// GST and PAN (case-insensitive substring). An empty query lists
	// customers capped at limit.
	SearchCustomers(ctx context.Context, query string, limit int) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines customer repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
