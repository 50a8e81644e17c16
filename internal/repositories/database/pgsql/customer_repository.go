package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	"github.com/vyapaarhq/ledger_backend/internal/models"
	"github.com/vyapaarhq/ledger_backend/internal/utils/mapping"
)

const customerColumns = `customer_id, name, phone_number, email, address, gst_number, pan_number, aadhaar_number, company_name, created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.PhoneNumber,
		&m.Email,
		&m.Address,
		&m.GSTNumber,
		&m.PANNumber,
		&m.AadhaarNumber,
		&m.CompanyName,
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

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.PhoneNumber,
		m.Email,
		m.Address,
		m.GSTNumber,
		m.PANNumber,
		m.AadhaarNumber,
		m.CompanyName,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: customer with aadhaar %s already exists", apperrors.ErrDuplicate, m.AadhaarNumber)
			}
		}
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// UpdateCustomer persists the mutable fields of an existing customer.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		UPDATE customers
		SET name = $2,
		    phone_number = $3,
		    email = $4,
		    address = $5,
		    gst_number = $6,
		    pan_number = $7,
		    company_name = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE customer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.PhoneNumber,
		m.Email,
		m.Address,
		m.GSTNumber,
		m.PANNumber,
		m.CompanyName,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+m.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer " + m.CustomerID + " not found for update")
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}

	d := mapping.ToDomainCustomer(*m)
	return &d, nil
}

// FindCustomerByAadhaar retrieves a customer by aadhaar number.
func (r *PgxCustomerRepository) FindCustomerByAadhaar(ctx context.Context, aadhaarNumber string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE aadhaar_number = $1;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, aadhaarNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by aadhaar", err)
	}

	d := mapping.ToDomainCustomer(*m)
	return &d, nil
}

// SearchCustomers matches the query against name, email, phone, company, GST
// and PAN, case-insensitive. An empty query lists customers up to the limit.
func (r *PgxCustomerRepository) SearchCustomers(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 100
	}

	baseQuery := `SELECT ` + customerColumns + ` FROM customers`
	orderBy := ` ORDER BY name ASC, created_at ASC`

	var rows pgx.Rows
	var err error
	if query == "" {
		rows, err = r.Pool.Query(ctx, baseQuery+orderBy+` LIMIT $1;`, limit)
	} else {
		filter := ` WHERE name ILIKE $1 OR email ILIKE $1 OR phone_number ILIKE $1 OR company_name ILIKE $1 OR gst_number ILIKE $1 OR pan_number ILIKE $1`
		rows, err = r.Pool.Query(ctx, baseQuery+filter+orderBy+` LIMIT $2;`, "%"+query+"%", limit)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to search customers", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		m, scanErr := scanCustomer(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", scanErr)
		}
		customers = append(customers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}

	return mapping.ToDomainCustomers(customers), nil
}
