package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// FindEntryByID retrieves a single entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindOutstandingStock retrieves the customer's stock entries with status
	// PENDING or PARTIAL, ordered by created_at ascending, ties broken by
	// entry_id ascending (the FIFO settlement order).
	FindOutstandingStock(ctx context.Context, customerID string) ([]domain.LedgerEntry, error)

	// FindLatestBefore retrieves the customer's entry with the latest
	// created_at strictly before the given instant (ties resolved to the
	// greatest entry_id). Returns apperrors.ErrNotFound when the customer has
	// no earlier entry.
	FindLatestBefore(ctx context.Context, customerID string, before time.Time) (*domain.LedgerEntry, error)

	// ListEntriesByCustomer retrieves a page of the customer's entries,
	// newest first, using token pagination. Also returns the token for the
	// next page, if any.
	ListEntriesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumByKind returns the customer's aggregate over one entry kind:
	// SUM(total) for stock, SUM(amount_paid) for payments.
	SumByKind(ctx context.Context, customerID string, kind domain.EntryKind) (decimal.Decimal, error)

	// SumOutstanding returns SUM(balance) over the customer's PENDING and
	// PARTIAL stock entries.
	SumOutstanding(ctx context.Context, customerID string) (decimal.Decimal, error)
}

// LedgerWriter defines the two atomic mutation units of the ledger.
type LedgerWriter interface {
	// SaveStockEntries persists a batch of stock entries in one transaction.
	// The customer row is locked to serialize with concurrent allocations;
	// each entry's running balance is chained from its predecessor inside
	// the transaction before insert.
	SaveStockEntries(ctx context.Context, customerID string, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error)

	// SavePaymentEntry persists the payment and applies it across the
	// customer's outstanding stock entries, all in one transaction: lock
	// customer row, chain the running balance, allocate oldest-first, update
	// the mutated stock rows, insert the payment. Either everything commits
	// or nothing does.
	SavePaymentEntry(ctx context.Context, payment domain.LedgerEntry) (*domain.LedgerEntry, []domain.EntryAllocation, decimal.Decimal, error)
}

// InsightsReader defines the read-only rollups over stock entries.
type InsightsReader interface {
	// GetPurchaseInsights groups stock entries by (entry_date, quality_type)
	// within the window, newest date first, and returns the per-group sums
	// plus the overall summary.
	GetPurchaseInsights(ctx context.Context, since *time.Time, qualityTypes []string) ([]domain.InsightGroup, domain.InsightSummary, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	InsightsReader
}
