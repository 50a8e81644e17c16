package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
)

var (
	ErrAadhaarTaken = errors.New("a customer with this aadhaar number already exists")
)

// searchResultCap bounds an unfiltered customer search.
const searchResultCap = 100

// customerService provides customer registration, lookup and search.
type customerService struct {
	customerRepo   portsrepo.CustomerRepositoryFacade
	ledgerSvc      portssvc.LedgerSvcFacade
	bankAccountSvc portssvc.BankAccountSvcFacade
	auditSvc       portssvc.AuditSvcFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade, bankAccountSvc portssvc.BankAccountSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo:   customerRepo,
		ledgerSvc:      ledgerSvc,
		bankAccountSvc: bankAccountSvc,
		auditSvc:       auditSvc,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer persists a new customer after the aadhaar duplicate check.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.customerRepo.FindCustomerByAadhaar(ctx, req.AadhaarNumber)
	if err == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDuplicate, ErrAadhaarTaken)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed aadhaar duplicate check", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed aadhaar duplicate check: %w", err)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
		GSTNumber:     req.GSTNumber,
		PANNumber:     req.PANNumber,
		AadhaarNumber: req.AadhaarNumber,
		CompanyName:   req.CompanyName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		// The unique index closes the race the pre-check leaves open.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrDuplicate, ErrAadhaarTaken)
		}
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.auditSvc.RecordAction(ctx, creatorUserID, domain.AuditCreate, "customer", customer.CustomerID, customer)

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// UpdateCustomer applies a partial update to a customer.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		customer.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.GSTNumber != nil {
		customer.GSTNumber = *req.GSTNumber
	}
	if req.PANNumber != nil {
		customer.PANNumber = *req.PANNumber
	}
	if req.CompanyName != nil {
		customer.CompanyName = *req.CompanyName
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.auditSvc.RecordAction(ctx, requestingUserID, domain.AuditUpdate, "customer", customerID, req)

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// GetCustomerByID retrieves a customer by ID.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

// GetCustomerDetails combines the customer, tax identifiers, bank accounts
// and aggregate balance into one view.
func (s *customerService) GetCustomerDetails(ctx context.Context, customerID string) (*dto.CustomerDetailsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.bankAccountSvc.ListBankAccounts(ctx, customerID)
	if err != nil {
		logger.Error("Failed to list bank accounts for details view", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}

	balance, err := s.ledgerSvc.GetCustomerBalance(ctx, customerID)
	if err != nil {
		logger.Error("Failed to compute balance for details view", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}

	res := &dto.CustomerDetailsResponse{
		Customer: dto.ToCustomerResponse(customer),
		TaxIdentifiers: dto.TaxIdentifierResponse{
			GSTNumber:     customer.GSTNumber,
			PANNumber:     customer.PANNumber,
			AadhaarNumber: customer.AadhaarNumber,
		},
		BankAccounts: dto.ToListBankAccountResponse(accounts).BankAccounts,
		Balance:      dto.ToCustomerBalanceResponse(customerID, balance),
	}
	return res, nil
}

// SearchCustomers matches the query against name, email, phone, company, GST
// and PAN. An empty query lists customers up to the cap.
func (s *customerService) SearchCustomers(ctx context.Context, params dto.SearchCustomersParams) ([]domain.Customer, error) {
	limit := params.Limit
	if limit <= 0 || limit > searchResultCap {
		limit = searchResultCap
	}

	customers, err := s.customerRepo.SearchCustomers(ctx, params.Query, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to search customers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return customers, nil
}
