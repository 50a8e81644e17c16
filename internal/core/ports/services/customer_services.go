package services

import (
	"context"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer by its ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// GetCustomerDetails retrieves a customer together with tax identifiers,
	// bank accounts and the aggregate balance.
	GetCustomerDetails(ctx context.Context, customerID string) (*dto.CustomerDetailsResponse, error)

	// SearchCustomers matches the query against name, email, phone, company,
	// GST and PAN. An empty query lists customers up to the cap.
	SearchCustomers(ctx context.Context, params dto.SearchCustomersParams) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer after the aadhaar duplicate check.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// UpdateCustomer applies a partial update to a customer.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
