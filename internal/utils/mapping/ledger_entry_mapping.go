package mapping

import (
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/models"
)

// ToModelLedgerEntry flattens a domain LedgerEntry into the single-table
// model, spreading the kind-specific payload into its nullable columns.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:        d.EntryID,
		CustomerID:     d.CustomerID,
		Kind:           models.EntryKind(d.Kind),
		EntryDate:      d.EntryDate,
		Total:          d.Total,
		AmountPaid:     d.AmountPaid,
		Balance:        d.Balance,
		PaymentStatus:  string(d.PaymentStatus),
		RunningBalance: d.RunningBalance,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Stock != nil {
		qualityType := d.Stock.QualityType
		quantity := d.Stock.Quantity
		rate := d.Stock.Rate
		m.QualityType = &qualityType
		m.Quantity = &quantity
		m.Rate = &rate
	}
	if d.Payment != nil {
		paymentType := string(d.Payment.PaymentType)
		m.PaymentType = &paymentType
		if d.Payment.BankAccountID != "" {
			bankAccountID := d.Payment.BankAccountID
			m.BankAccountID = &bankAccountID
		}
		if d.Payment.TransactionRef != "" {
			transactionRef := d.Payment.TransactionRef
			m.TransactionRef = &transactionRef
		}
	}
	return m
}

// ToDomainLedgerEntry rebuilds the tagged variant from the flat model row.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:        m.EntryID,
		CustomerID:     m.CustomerID,
		Kind:           domain.EntryKind(m.Kind),
		EntryDate:      m.EntryDate,
		Total:          m.Total,
		AmountPaid:     m.AmountPaid,
		Balance:        m.Balance,
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		RunningBalance: m.RunningBalance,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	switch d.Kind {
	case domain.KindStock:
		stock := domain.StockDetails{}
		if m.QualityType != nil {
			stock.QualityType = *m.QualityType
		}
		if m.Quantity != nil {
			stock.Quantity = *m.Quantity
		}
		if m.Rate != nil {
			stock.Rate = *m.Rate
		}
		d.Stock = &stock
	case domain.KindPayment:
		payment := domain.PaymentDetails{}
		if m.PaymentType != nil {
			payment.PaymentType = domain.PaymentType(*m.PaymentType)
		}
		if m.BankAccountID != nil {
			payment.BankAccountID = *m.BankAccountID
		}
		if m.TransactionRef != nil {
			payment.TransactionRef = *m.TransactionRef
		}
		d.Payment = &payment
	}
	return d
}

// ToDomainLedgerEntries converts a slice of model rows to domain entries
func ToDomainLedgerEntries(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
