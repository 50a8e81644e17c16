package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	"github.com/vyapaarhq/ledger_backend/internal/models"
	"github.com/vyapaarhq/ledger_backend/internal/utils/accounting"
	"github.com/vyapaarhq/ledger_backend/internal/utils/mapping"
	"github.com/vyapaarhq/ledger_backend/internal/utils/pagination"
)

const ledgerEntryColumns = `entry_id, customer_id, kind, entry_date, total, amount_paid, balance, payment_status, running_balance, notes, quality_type, quantity, rate, payment_type, bank_account_id, transaction_ref, created_at, created_by, last_updated_at, last_updated_by`

const insertLedgerEntryQuery = `
	INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.CustomerID,
		&m.Kind,
		&m.EntryDate,
		&m.Total,
		&m.AmountPaid,
		&m.Balance,
		&m.PaymentStatus,
		&m.RunningBalance,
		&m.Notes,
		&m.QualityType,
		&m.Quantity,
		&m.Rate,
		&m.PaymentType,
		&m.BankAccountID,
		&m.TransactionRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func queueLedgerEntryInsert(batch *pgx.Batch, m models.LedgerEntry) {
	batch.Queue(insertLedgerEntryQuery,
		m.EntryID,
		m.CustomerID,
		m.Kind,
		m.EntryDate,
		m.Total,
		m.AmountPaid,
		m.Balance,
		m.PaymentStatus,
		m.RunningBalance,
		m.Notes,
		m.QualityType,
		m.Quantity,
		m.Rate,
		m.PaymentType,
		m.BankAccountID,
		m.TransactionRef,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// lockCustomerRow serializes all ledger mutations for one customer. Writers
// for different customers proceed independently.
func (r *PgxLedgerRepository) lockCustomerRow(ctx context.Context, tx pgx.Tx, customerID string) error {
	var id string
	err := tx.QueryRow(ctx,
		`SELECT customer_id FROM customers WHERE customer_id = $1 FOR UPDATE;`,
		customerID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return apperrors.NewAppError(500, "failed to lock customer row "+customerID, err)
	}
	return nil
}

// findLatestEntryTx returns the customer's most recent entry inside the
// transaction, or nil when the ledger is empty.
func (r *PgxLedgerRepository) findLatestEntryTx(ctx context.Context, tx pgx.Tx, customerID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE customer_id = $1
		ORDER BY created_at DESC, entry_id DESC
		LIMIT 1;
	`
	m, err := scanLedgerEntry(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find latest entry for customer "+customerID, err)
	}
	d := mapping.ToDomainLedgerEntry(*m)
	return &d, nil
}

// SaveStockEntries persists a batch of stock entries in one transaction,
// chaining each running balance from its predecessor.
func (r *PgxLedgerRepository) SaveStockEntries(ctx context.Context, customerID string, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockCustomerRow(ctx, tx, customerID); err != nil {
		return nil, err
	}

	prev, err := r.findLatestEntryTx(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for i := range entries {
		entries[i].RunningBalance = accounting.NextRunningBalance(prev, domain.KindStock, entries[i].Total)
		prev = &entries[i]
		queueLedgerEntryInsert(batch, mapping.ToModelLedgerEntry(entries[i]))
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute stock entry batch for customer "+customerID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entries, nil
}

// SavePaymentEntry persists the payment and applies it across the customer's
// outstanding stock inside one transaction. Either every mutation commits or
// none do.
func (r *PgxLedgerRepository) SavePaymentEntry(ctx context.Context, payment domain.LedgerEntry) (*domain.LedgerEntry, []domain.EntryAllocation, decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockCustomerRow(ctx, tx, payment.CustomerID); err != nil {
		return nil, nil, decimal.Zero, err
	}

	outstanding, err := r.findOutstandingStockTx(ctx, tx, payment.CustomerID)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}

	result, err := accounting.ApplyPayment(payment.Total, outstanding)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}

	prev, err := r.findLatestEntryTx(ctx, tx, payment.CustomerID)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	payment.RunningBalance = accounting.NextRunningBalance(prev, domain.KindPayment, payment.Total)

	// Update the settled stock rows, then insert the payment.
	batch := &pgx.Batch{}
	updateQuery := `
		UPDATE ledger_entries
		SET amount_paid = $2,
		    balance = $3,
		    payment_status = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1;
	`
	for _, mutated := range result.Mutated {
		batch.Queue(updateQuery,
			mutated.EntryID,
			mutated.AmountPaid,
			mutated.Balance,
			string(mutated.PaymentStatus),
			payment.CreatedAt,
			payment.CreatedBy,
		)
	}
	queueLedgerEntryInsert(batch, mapping.ToModelLedgerEntry(payment))

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, nil, decimal.Zero, fmt.Errorf("%w: payment with this transaction reference already recorded", apperrors.ErrDuplicate)
		}
		return nil, nil, decimal.Zero, apperrors.NewAppError(500, "failed to execute payment batch for customer "+payment.CustomerID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, decimal.Zero, err
	}
	return &payment, result.Applied, result.Remaining, nil
}

// findOutstandingStockTx fetches the customer's unsettled stock rows in FIFO
// order, locked for the duration of the transaction.
func (r *PgxLedgerRepository) findOutstandingStockTx(ctx context.Context, tx pgx.Tx, customerID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE customer_id = $1 AND kind = 'STOCK' AND payment_status IN ('PENDING', 'PARTIAL')
		ORDER BY created_at ASC, entry_id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query outstanding stock for customer "+customerID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, scanErr := scanLedgerEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan outstanding stock row", scanErr)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating outstanding stock rows", err)
	}

	return mapping.ToDomainLedgerEntries(entries), nil
}

// FindEntryByID retrieves a single ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry by ID "+entryID, err)
	}

	d := mapping.ToDomainLedgerEntry(*m)
	return &d, nil
}

// FindOutstandingStock retrieves the customer's unsettled stock entries in
// FIFO settlement order, without locking.
func (r *PgxLedgerRepository) FindOutstandingStock(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE customer_id = $1 AND kind = 'STOCK' AND payment_status IN ('PENDING', 'PARTIAL')
		ORDER BY created_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query outstanding stock for customer "+customerID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, scanErr := scanLedgerEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan outstanding stock row", scanErr)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating outstanding stock rows", err)
	}

	return mapping.ToDomainLedgerEntries(entries), nil
}

// FindLatestBefore retrieves the customer's entry with the latest created_at
// strictly before the given instant.
func (r *PgxLedgerRepository) FindLatestBefore(ctx context.Context, customerID string, before time.Time) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE customer_id = $1 AND created_at < $2
		ORDER BY created_at DESC, entry_id DESC
		LIMIT 1;
	`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, customerID, before))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest entry before cutoff for customer "+customerID, err)
	}

	d := mapping.ToDomainLedgerEntry(*m)
	return &d, nil
}

// ListEntriesByCustomer retrieves a page of the customer's entries, newest
// first, using token-based pagination.
func (r *PgxLedgerRepository) ListEntriesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE customer_id = $1
	`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{customerID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (entry_date, created_at, entry_id) < ($2, $3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt, lastEntryID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for customer "+customerID, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLedgerEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row for customer "+customerID, scanErr)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows for customer "+customerID, err)
	}

	var nextTokenVal *string
	results := entries
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		results = entries[:limit]
	}

	return mapping.ToDomainLedgerEntries(results), nextTokenVal, nil
}

// SumByKind returns the customer's aggregate over one entry kind: the sum of
// totals for stock, the sum of amounts paid for payments.
func (r *PgxLedgerRepository) SumByKind(ctx context.Context, customerID string, kind domain.EntryKind) (decimal.Decimal, error) {
	column := "total"
	if kind == domain.KindPayment {
		column = "amount_paid"
	}
	query := `SELECT COALESCE(SUM(` + column + `), 0) FROM ledger_entries WHERE customer_id = $1 AND kind = $2;`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, customerID, string(kind)).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger entries for customer "+customerID, err)
	}
	return sum, nil
}

// SumOutstanding returns the total open balance across the customer's
// unsettled stock entries.
func (r *PgxLedgerRepository) SumOutstanding(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(balance), 0)
		FROM ledger_entries
		WHERE customer_id = $1 AND kind = 'STOCK' AND payment_status IN ('PENDING', 'PARTIAL');
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, customerID).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum outstanding balance for customer "+customerID, err)
	}
	return sum, nil
}

// GetPurchaseInsights groups stock entries by (entry_date, quality_type)
// within the window, newest date first, plus an overall rollup.
func (r *PgxLedgerRepository) GetPurchaseInsights(ctx context.Context, since *time.Time, qualityTypes []string) ([]domain.InsightGroup, domain.InsightSummary, error) {
	whereClause := `WHERE kind = 'STOCK'`
	args := []interface{}{}
	if since != nil {
		args = append(args, *since)
		whereClause += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if len(qualityTypes) > 0 {
		args = append(args, qualityTypes)
		whereClause += ` AND quality_type = ANY($` + strconv.Itoa(len(args)) + `)`
	}

	query := `
		SELECT entry_date, quality_type, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(total), 0)
		FROM ledger_entries
		` + whereClause + `
		GROUP BY entry_date, quality_type
		ORDER BY entry_date DESC, quality_type ASC;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.InsightSummary{}, apperrors.NewAppError(500, "failed to query purchase insights", err)
	}
	defer rows.Close()

	groups := []domain.InsightGroup{}
	summary := domain.InsightSummary{
		TotalAmount:   decimal.Zero,
		TotalQuantity: decimal.Zero,
	}
	for rows.Next() {
		var g domain.InsightGroup
		var count int64
		if scanErr := rows.Scan(&g.EntryDate, &g.QualityType, &count, &g.TotalQuantity, &g.TotalAmount); scanErr != nil {
			return nil, domain.InsightSummary{}, apperrors.NewAppError(500, "failed to scan insight row", scanErr)
		}
		groups = append(groups, g)
		summary.TotalPurchases += count
		summary.TotalQuantity = summary.TotalQuantity.Add(g.TotalQuantity)
		summary.TotalAmount = summary.TotalAmount.Add(g.TotalAmount)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InsightSummary{}, apperrors.NewAppError(500, "error iterating insight rows", err)
	}

	return groups, summary, nil
}
