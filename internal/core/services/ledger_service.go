package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
)

var (
	ErrEmptyStockBatch     = errors.New("stock batch must contain at least one entry")
	ErrQuantityNotPositive = errors.New("stock quantity must be positive")
	ErrRateNotPositive     = errors.New("stock rate must be positive")
	ErrQualityTypeMissing  = errors.New("stock quality type is required")
	ErrAmountNegative      = errors.New("payment amount must not be negative")
	ErrBankAccountRequired = errors.New("bank account is required for non-cash payments")
	ErrBankAccountMismatch = errors.New("bank account does not belong to the customer")
	ErrBankAccountInactive = errors.New("bank account is inactive")
	ErrEntryDateMissing    = errors.New("entry date is required")
)

// ledgerService provides the stock and payment operations of the ledger.
type ledgerService struct {
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	customerRepo    portsrepo.CustomerRepositoryFacade
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
	auditSvc        portssvc.AuditSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, bankAccountRepo portsrepo.BankAccountRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:      ledgerRepo,
		customerRepo:    customerRepo,
		bankAccountRepo: bankAccountRepo,
		auditSvc:        auditSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordStockEntries validates and persists a batch of stock purchases for
// one customer. The repository chains the running balances under lock.
func (s *ledgerService) RecordStockEntries(ctx context.Context, req dto.CreateStockEntriesRequest, creatorUserID string) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Entries) == 0 {
		return nil, ErrEmptyStockBatch
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", req.CustomerID, apperrors.ErrNotFound)
		}
		logger.Error("Failed to fetch customer for stock batch", slog.String("error", err.Error()), slog.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	now := time.Now().UTC()
	entries := make([]domain.LedgerEntry, len(req.Entries))
	for i, item := range req.Entries {
		// Batch members are chained in slice order, so their created_at
		// values must order the same way for later chain-tail lookups.
		createdAt := now.Add(time.Duration(i) * time.Microsecond)
		if item.EntryDate.IsZero() {
			return nil, ErrEntryDateMissing
		}
		if item.QualityType == "" {
			return nil, ErrQualityTypeMissing
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: got %s", ErrQuantityNotPositive, item.Quantity)
		}
		if item.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: got %s", ErrRateNotPositive, item.Rate)
		}

		total := item.Quantity.Mul(item.Rate)
		entries[i] = domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			CustomerID:    req.CustomerID,
			Kind:          domain.KindStock,
			EntryDate:     item.EntryDate,
			Total:         total,
			AmountPaid:    decimal.Zero,
			Balance:       total,
			PaymentStatus: domain.StatusPending,
			Notes:         item.Notes,
			Stock: &domain.StockDetails{
				QualityType: item.QualityType,
				Quantity:    item.Quantity,
				Rate:        item.Rate,
			},
			AuditFields: domain.AuditFields{
				CreatedAt:     createdAt,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: createdAt,
				LastUpdatedBy: creatorUserID,
			},
			// RunningBalance is chained by the repository inside the transaction.
		}
	}

	saved, err := s.ledgerRepo.SaveStockEntries(ctx, req.CustomerID, entries)
	if err != nil {
		logger.Error("Failed to save stock batch", slog.String("error", err.Error()), slog.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to save stock entries: %w", err)
	}

	for _, e := range saved {
		s.auditSvc.RecordAction(ctx, creatorUserID, domain.AuditCreate, "ledger_entry", e.EntryID, e)
	}

	logger.Info("Stock batch recorded", slog.String("customer_id", req.CustomerID), slog.Int("entry_count", len(saved)))
	return saved, nil
}

// RecordPayment validates and persists a payment, allocating it against the
// customer's outstanding stock oldest first.
func (s *ledgerService) RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*dto.RecordPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EntryDate.IsZero() {
		return nil, ErrEntryDateMissing
	}
	// A zero-amount payment is legal: it records the event and allocates
	// nothing.
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNegative, req.Amount)
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", req.CustomerID, apperrors.ErrNotFound)
		}
		logger.Error("Failed to fetch customer for payment", slog.String("error", err.Error()), slog.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	paymentType := domain.PaymentType(req.PaymentType)
	payment := domain.PaymentDetails{PaymentType: paymentType}

	// Cash needs no destination account; bank transfers and UPI do.
	if paymentType != domain.PaymentCash {
		if req.BankAccountID == nil || *req.BankAccountID == "" {
			return nil, ErrBankAccountRequired
		}
		account, err := s.bankAccountRepo.FindBankAccountByID(ctx, *req.BankAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("bank account %s: %w", *req.BankAccountID, apperrors.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to fetch bank account: %w", err)
		}
		if account.CustomerID != req.CustomerID {
			return nil, ErrBankAccountMismatch
		}
		if !account.IsActive {
			return nil, ErrBankAccountInactive
		}
		payment.BankAccountID = *req.BankAccountID
	}
	if req.TransactionRef != nil {
		payment.TransactionRef = *req.TransactionRef
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		CustomerID: req.CustomerID,
		Kind:       domain.KindPayment,
		EntryDate:  req.EntryDate,
		Total:      req.Amount,
		// A payment is settled by definition: it carries no open balance.
		AmountPaid:    req.Amount,
		Balance:       decimal.Zero,
		PaymentStatus: domain.StatusPaid,
		Notes:         req.Notes,
		Payment:       &payment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, allocations, remaining, err := s.ledgerRepo.SavePaymentEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.auditSvc.RecordAction(ctx, creatorUserID, domain.AuditCreate, "ledger_entry", saved.EntryID, saved)
	for _, a := range allocations {
		s.auditSvc.RecordAction(ctx, creatorUserID, domain.AuditUpdate, "ledger_entry", a.EntryID, a)
	}

	if remaining.GreaterThan(decimal.Zero) {
		logger.Info("Payment exceeds outstanding balance, surplus recorded as advance",
			slog.String("customer_id", req.CustomerID), slog.String("surplus", remaining.String()))
	}

	res := &dto.RecordPaymentResponse{
		Entry:             dto.ToLedgerEntryResponse(saved),
		Allocations:       dto.ToAllocationResponses(allocations),
		UnallocatedAmount: remaining,
	}
	logger.Info("Payment recorded", slog.String("entry_id", saved.EntryID), slog.String("customer_id", req.CustomerID), slog.Int("allocation_count", len(allocations)))
	return res, nil
}

// GetEntryByID retrieves a single ledger entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListCustomerEntries retrieves a page of a customer's entries, newest first,
// plus the customer's total pending balance.
func (s *ledgerService) ListCustomerEntries(ctx context.Context, customerID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByCustomer(ctx, customerID, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list customer entries", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	totalPending, err := s.ledgerRepo.SumOutstanding(ctx, customerID)
	if err != nil {
		logger.Error("Failed to sum outstanding balance", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to sum outstanding balance: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:      dto.ToLedgerEntryResponses(entries),
		TotalPending: totalPending,
		NextToken:    nextToken,
	}, nil
}

// GetCustomerBalance computes the customer's aggregate position from the
// whole ledger. A negative net balance is reported as an advance.
func (s *ledgerService) GetCustomerBalance(ctx context.Context, customerID string) (*domain.CustomerBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	totalStock, err := s.ledgerRepo.SumByKind(ctx, customerID, domain.KindStock)
	if err != nil {
		logger.Error("Failed to sum stock totals", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to sum stock totals: %w", err)
	}
	totalPayments, err := s.ledgerRepo.SumByKind(ctx, customerID, domain.KindPayment)
	if err != nil {
		logger.Error("Failed to sum payments", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	totalPending, err := s.ledgerRepo.SumOutstanding(ctx, customerID)
	if err != nil {
		logger.Error("Failed to sum outstanding balance", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to sum outstanding balance: %w", err)
	}

	net := totalStock.Sub(totalPayments)
	balance := &domain.CustomerBalance{
		TotalStockAmount: totalStock,
		TotalPayments:    totalPayments,
		NetBalance:       net,
		TotalPending:     totalPending,
		AdvanceAmount:    decimal.Zero,
	}
	if net.IsNegative() {
		balance.IsAdvance = true
		balance.AdvanceAmount = net.Neg()
	}
	return balance, nil
}
