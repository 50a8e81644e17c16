package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	"github.com/vyapaarhq/ledger_backend/internal/models"
	"github.com/vyapaarhq/ledger_backend/internal/utils/mapping"
)

const bankAccountColumns = `bank_account_id, customer_id, account_holder_name, bank_name, account_number, ifsc_code, is_active, is_default, created_at, created_by, last_updated_at, last_updated_by`

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

func scanBankAccount(row pgx.Row) (*models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.CustomerID,
		&m.AccountHolderName,
		&m.BankName,
		&m.AccountNumber,
		&m.IFSCCode,
		&m.IsActive,
		&m.IsDefault,
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

// SaveBankAccount inserts the account inside a transaction that maintains the
// single-default invariant: the customer's first account becomes the default,
// and an explicit new default demotes the previous one.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Serialize default handling across concurrent inserts for this customer
	// by locking the parent customer row.
	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT customer_id FROM customers WHERE customer_id = $1 FOR UPDATE;`,
		m.CustomerID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock customer "+m.CustomerID, err)
	}

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bank_accounts WHERE customer_id = $1;`,
		m.CustomerID,
	).Scan(&existing)
	if err != nil {
		return apperrors.NewAppError(500, "failed to count bank accounts for customer "+m.CustomerID, err)
	}

	if existing == 0 {
		m.IsDefault = true
	} else if m.IsDefault {
		_, err = tx.Exec(ctx,
			`UPDATE bank_accounts SET is_default = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE customer_id = $1 AND is_default = TRUE;`,
			m.CustomerID, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to clear previous default bank account", err)
		}
	}

	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.BankAccountID,
		m.CustomerID,
		m.AccountHolderName,
		m.BankName,
		m.AccountNumber,
		m.IFSCCode,
		m.IsActive,
		m.IsDefault,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: account number %s already exists for customer", apperrors.ErrDuplicate, m.AccountNumber)
			}
		}
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}

	return r.Commit(ctx, tx)
}

// FindBankAccountByID retrieves one bank account.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`

	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account by ID "+bankAccountID, err)
	}

	d := mapping.ToDomainBankAccount(*m)
	return &d, nil
}

// ListBankAccountsByCustomer retrieves a customer's accounts, default first.
func (r *PgxBankAccountRepository) ListBankAccountsByCustomer(ctx context.Context, customerID string) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE customer_id = $1
		ORDER BY is_default DESC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts for customer "+customerID, err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		m, scanErr := scanBankAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", scanErr)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}

	return mapping.ToDomainBankAccounts(accounts), nil
}

// SetDefault marks the account as the customer's default and clears the flag
// on all siblings in the same transaction.
func (r *PgxBankAccountRepository) SetDefault(ctx context.Context, customerID, bankAccountID, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()

	// Demote siblings first so the partial unique index on (customer_id)
	// WHERE is_default never sees two defaults.
	_, err = tx.Exec(ctx,
		`UPDATE bank_accounts SET is_default = FALSE, last_updated_at = $3, last_updated_by = $4 WHERE customer_id = $1 AND bank_account_id != $2 AND is_default = TRUE;`,
		customerID, bankAccountID, now, updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear sibling default flags", err)
	}

	cmdTag, err := tx.Exec(ctx,
		`UPDATE bank_accounts SET is_default = TRUE, last_updated_at = $3, last_updated_by = $4 WHERE customer_id = $1 AND bank_account_id = $2;`,
		customerID, bankAccountID, now, updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set default bank account "+bankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank account " + bankAccountID + " not found for customer " + customerID)
	}

	return r.Commit(ctx, tx)
}
