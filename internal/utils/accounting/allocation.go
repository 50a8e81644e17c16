package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// AllocationResult is the outcome of applying one payment against a
// customer's outstanding stock entries.
type AllocationResult struct {
	// Applied lists (entryID, amountApplied, newBalance) in the order the
	// entries were settled, oldest first.
	Applied []domain.EntryAllocation
	// Mutated holds the stock entries whose paid/balance/status changed,
	// ready to be persisted. Same order as Applied.
	Mutated []domain.LedgerEntry
	// Remaining is the unapplied surplus. It is not turned into a credit
	// entry; the aggregate balance query surfaces it as an advance.
	Remaining decimal.Decimal
}

// ApplyPayment walks the outstanding stock entries oldest-first and applies
// the payment amount against each open balance until the funds run out.
// The entries slice must already be ordered by creation time ascending (ties
// by entry ID); the caller fetches it with that ordering under lock.
//
// Each entry receives min(remaining, entry.Balance). The function never
// over-applies: post-conditions are 0 <= balance <= total and
// amountPaid <= total on every mutated entry, checked and reported as
// apperrors.ErrInvariant if violated (which indicates corrupted input, not a
// caller mistake).
func ApplyPayment(amount decimal.Decimal, outstanding []domain.LedgerEntry) (AllocationResult, error) {
	res := AllocationResult{Remaining: amount}
	if amount.IsNegative() {
		return res, fmt.Errorf("%w: payment amount must not be negative, got %s", apperrors.ErrValidation, amount)
	}

	for _, entry := range outstanding {
		if res.Remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		if entry.Kind != domain.KindStock {
			return res, fmt.Errorf("%w: entry %s is not a stock entry", apperrors.ErrInvariant, entry.EntryID)
		}
		if entry.Balance.LessThanOrEqual(decimal.Zero) {
			continue
		}

		applied := decimal.Min(res.Remaining, entry.Balance)
		entry.AmountPaid = entry.AmountPaid.Add(applied)
		entry.Balance = entry.Balance.Sub(applied)
		entry.PaymentStatus = domain.DeriveStatus(entry.AmountPaid, entry.Balance)
		res.Remaining = res.Remaining.Sub(applied)

		if entry.Balance.IsNegative() || entry.AmountPaid.GreaterThan(entry.Total) {
			return res, fmt.Errorf("%w: entry %s would end with balance %s and amountPaid %s of total %s",
				apperrors.ErrInvariant, entry.EntryID, entry.Balance, entry.AmountPaid, entry.Total)
		}

		res.Applied = append(res.Applied, domain.EntryAllocation{
			EntryID:       entry.EntryID,
			AmountApplied: applied,
			NewBalance:    entry.Balance,
		})
		res.Mutated = append(res.Mutated, entry)
	}

	return res, nil
}

// NextRunningBalance chains the customer's running balance forward from the
// immediately preceding entry: stock adds its total, a payment subtracts the
// amount paid. prev is nil for the customer's first entry.
func NextRunningBalance(prev *domain.LedgerEntry, kind domain.EntryKind, amount decimal.Decimal) decimal.Decimal {
	base := decimal.Zero
	if prev != nil {
		base = prev.RunningBalance
	}
	if kind == domain.KindStock {
		return base.Add(amount)
	}
	return base.Sub(amount)
}
