package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/utils/accounting"
)

func newStockEntry(id string, total, paid decimal.Decimal) domain.LedgerEntry {
	balance := total.Sub(paid)
	return domain.LedgerEntry{
		EntryID:       id,
		CustomerID:    "cust-1",
		Kind:          domain.KindStock,
		Total:         total,
		AmountPaid:    paid,
		Balance:       balance,
		PaymentStatus: domain.DeriveStatus(paid, balance),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyPayment_PartialOldestFirst(t *testing.T) {
	outstanding := []domain.LedgerEntry{
		newStockEntry("e1", dec("1000"), decimal.Zero),
		newStockEntry("e2", dec("500"), decimal.Zero),
	}

	res, err := accounting.ApplyPayment(dec("700"), outstanding)
	require.NoError(t, err)

	require.Len(t, res.Applied, 1)
	assert.Equal(t, "e1", res.Applied[0].EntryID)
	assert.True(t, res.Applied[0].AmountApplied.Equal(dec("700")))
	assert.True(t, res.Applied[0].NewBalance.Equal(dec("300")))
	assert.True(t, res.Remaining.IsZero())

	require.Len(t, res.Mutated, 1)
	assert.Equal(t, domain.StatusPartial, res.Mutated[0].PaymentStatus)
	assert.True(t, res.Mutated[0].AmountPaid.Equal(dec("700")))
}

func TestApplyPayment_SpansMultipleEntries(t *testing.T) {
	outstanding := []domain.LedgerEntry{
		newStockEntry("e1", dec("1000"), dec("700")),
		newStockEntry("e2", dec("500"), decimal.Zero),
	}

	res, err := accounting.ApplyPayment(dec("800"), outstanding)
	require.NoError(t, err)

	require.Len(t, res.Applied, 2)
	assert.Equal(t, "e1", res.Applied[0].EntryID)
	assert.True(t, res.Applied[0].AmountApplied.Equal(dec("300")))
	assert.True(t, res.Applied[0].NewBalance.IsZero())
	assert.Equal(t, "e2", res.Applied[1].EntryID)
	assert.True(t, res.Applied[1].AmountApplied.Equal(dec("500")))
	assert.True(t, res.Applied[1].NewBalance.IsZero())

	assert.Equal(t, domain.StatusPaid, res.Mutated[0].PaymentStatus)
	assert.Equal(t, domain.StatusPaid, res.Mutated[1].PaymentStatus)
	assert.True(t, res.Remaining.IsZero())
}

func TestApplyPayment_SurplusLeftUnallocated(t *testing.T) {
	outstanding := []domain.LedgerEntry{
		newStockEntry("e1", dec("400"), decimal.Zero),
	}

	res, err := accounting.ApplyPayment(dec("1000"), outstanding)
	require.NoError(t, err)

	require.Len(t, res.Applied, 1)
	assert.True(t, res.Applied[0].AmountApplied.Equal(dec("400")))
	assert.True(t, res.Remaining.Equal(dec("600")))
}

func TestApplyPayment_NoOutstanding(t *testing.T) {
	res, err := accounting.ApplyPayment(dec("250"), nil)
	require.NoError(t, err)

	assert.Empty(t, res.Applied)
	assert.Empty(t, res.Mutated)
	assert.True(t, res.Remaining.Equal(dec("250")))
}

func TestApplyPayment_ZeroAmount(t *testing.T) {
	outstanding := []domain.LedgerEntry{
		newStockEntry("e1", dec("100"), decimal.Zero),
	}

	res, err := accounting.ApplyPayment(decimal.Zero, outstanding)
	require.NoError(t, err)

	assert.Empty(t, res.Applied)
	assert.True(t, res.Remaining.IsZero())
}

func TestApplyPayment_NegativeAmountRejected(t *testing.T) {
	_, err := accounting.ApplyPayment(dec("-1"), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApplyPayment_SkipsSettledEntries(t *testing.T) {
	outstanding := []domain.LedgerEntry{
		newStockEntry("e1", dec("300"), dec("300")),
		newStockEntry("e2", dec("200"), decimal.Zero),
	}

	res, err := accounting.ApplyPayment(dec("150"), outstanding)
	require.NoError(t, err)

	require.Len(t, res.Applied, 1)
	assert.Equal(t, "e2", res.Applied[0].EntryID)
	assert.True(t, res.Applied[0].AmountApplied.Equal(dec("150")))
}

func TestApplyPayment_RejectsPaymentEntryInInput(t *testing.T) {
	bad := domain.LedgerEntry{
		EntryID: "p1",
		Kind:    domain.KindPayment,
		Balance: dec("100"),
	}

	_, err := accounting.ApplyPayment(dec("50"), []domain.LedgerEntry{bad})
	assert.ErrorIs(t, err, apperrors.ErrInvariant)
}

func TestApplyPayment_NeverOverApplies(t *testing.T) {
	outstanding := []domain.LedgerEntry{
		newStockEntry("e1", dec("100.50"), dec("25.25")),
		newStockEntry("e2", dec("33.33"), decimal.Zero),
		newStockEntry("e3", dec("66.67"), dec("1.01")),
	}

	res, err := accounting.ApplyPayment(dec("120"), outstanding)
	require.NoError(t, err)

	for _, m := range res.Mutated {
		assert.False(t, m.Balance.IsNegative(), "entry %s balance went negative", m.EntryID)
		assert.True(t, m.AmountPaid.LessThanOrEqual(m.Total), "entry %s overpaid", m.EntryID)
	}

	applied := decimal.Zero
	for _, a := range res.Applied {
		applied = applied.Add(a.AmountApplied)
	}
	assert.True(t, applied.Add(res.Remaining).Equal(dec("120")))
}

func TestNextRunningBalance_FirstEntryFromZero(t *testing.T) {
	got := accounting.NextRunningBalance(nil, domain.KindStock, dec("1000"))
	assert.True(t, got.Equal(dec("1000")))

	got = accounting.NextRunningBalance(nil, domain.KindPayment, dec("200"))
	assert.True(t, got.Equal(dec("-200")))
}

func TestNextRunningBalance_Chaining(t *testing.T) {
	prev := &domain.LedgerEntry{RunningBalance: dec("1000")}

	afterStock := accounting.NextRunningBalance(prev, domain.KindStock, dec("500"))
	assert.True(t, afterStock.Equal(dec("1500")))

	prev.RunningBalance = afterStock
	afterPayment := accounting.NextRunningBalance(prev, domain.KindPayment, dec("700"))
	assert.True(t, afterPayment.Equal(dec("800")))
}
