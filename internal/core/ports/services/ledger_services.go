package services

import (
	"context"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger data
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific ledger entry by its ID.
	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListCustomerEntries retrieves a paginated list of a customer's entries,
	// newest first, together with the customer's total pending balance.
	ListCustomerEntries(ctx context.Context, customerID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// GetCustomerBalance computes the customer's aggregate position from the
	// full ledger, including advance detection.
	GetCustomerBalance(ctx context.Context, customerID string) (*domain.CustomerBalance, error)
}

// LedgerWriterSvc defines write operations for ledger data
type LedgerWriterSvc interface {
	// RecordStockEntries persists a batch of stock purchases for one customer
	// with chained running balances.
	RecordStockEntries(ctx context.Context, req dto.CreateStockEntriesRequest, creatorUserID string) ([]domain.LedgerEntry, error)

	// RecordPayment persists a payment and allocates it across the customer's
	// outstanding stock oldest first, returning the allocation report.
	RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*dto.RecordPaymentResponse, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
