package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/core/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo      *MockLedgerRepository
	mockCustomerRepo    *MockCustomerRepository
	mockBankAccountRepo *MockBankAccountRepository
	mockAuditSvc        *MockAuditService
	service             portssvc.LedgerSvcFacade
	customer            domain.Customer
	userID              string
	ctx                 context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockBankAccountRepo = new(MockBankAccountRepository)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockCustomerRepo, suite.mockBankAccountRepo, suite.mockAuditSvc)

	suite.userID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          "Ravi Traders",
		AadhaarNumber: "123456789012",
	}
	suite.ctx = context.Background()
	suite.mockAuditSvc.On("RecordAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (suite *LedgerServiceTestSuite) validStockRequest() dto.CreateStockEntriesRequest {
	return dto.CreateStockEntriesRequest{
		CustomerID: suite.customer.CustomerID,
		Entries: []dto.CreateStockEntryItem{
			{
				EntryDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				QualityType: "Grade A",
				Quantity:    decimal.RequireFromString("100"),
				Rate:        decimal.RequireFromString("10"),
			},
			{
				EntryDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				QualityType: "Grade B",
				Quantity:    decimal.RequireFromString("50"),
				Rate:        decimal.RequireFromString("8"),
			},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestRecordStockEntries_Success() {
	req := suite.validStockRequest()
	persisted := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), Kind: domain.KindStock},
		{EntryID: uuid.NewString(), Kind: domain.KindStock},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockLedgerRepo.On("SaveStockEntries", suite.ctx, suite.customer.CustomerID, mock.AnythingOfType("[]domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			entries := args.Get(2).([]domain.LedgerEntry)
			suite.Require().Len(entries, 2)
			suite.True(entries[0].Total.Equal(decimal.RequireFromString("1000")))
			suite.True(entries[0].Balance.Equal(entries[0].Total))
			suite.True(entries[0].AmountPaid.IsZero())
			suite.Equal(domain.StatusPending, entries[0].PaymentStatus)
			suite.True(entries[1].Total.Equal(decimal.RequireFromString("400")))
			// Chain order must be recoverable from created_at alone.
			suite.True(entries[0].CreatedAt.Before(entries[1].CreatedAt))
		}).
		Return(persisted, nil).Once()

	saved, err := suite.service.RecordStockEntries(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(saved, 2)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordStockEntries_EmptyBatch() {
	req := dto.CreateStockEntriesRequest{CustomerID: suite.customer.CustomerID}

	_, err := suite.service.RecordStockEntries(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrEmptyStockBatch)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveStockEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordStockEntries_NonPositiveQuantity() {
	req := suite.validStockRequest()
	req.Entries[0].Quantity = decimal.Zero
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	_, err := suite.service.RecordStockEntries(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrQuantityNotPositive)
}

func (suite *LedgerServiceTestSuite) TestRecordStockEntries_CustomerNotFound() {
	req := suite.validStockRequest()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordStockEntries(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_CashSuccess() {
	req := dto.CreatePaymentRequest{
		CustomerID:  suite.customer.CustomerID,
		EntryDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("700"),
		PaymentType: string(domain.PaymentCash),
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	allocations := []domain.EntryAllocation{
		{EntryID: "stock-1", AmountApplied: decimal.RequireFromString("700"), NewBalance: decimal.RequireFromString("300")},
	}
	persisted := &domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		CustomerID:    suite.customer.CustomerID,
		Kind:          domain.KindPayment,
		Total:         req.Amount,
		AmountPaid:    req.Amount,
		PaymentStatus: domain.StatusPaid,
		Payment:       &domain.PaymentDetails{PaymentType: domain.PaymentCash},
	}
	suite.mockLedgerRepo.On("SavePaymentEntry", suite.ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.LedgerEntry)
			suite.Equal(domain.KindPayment, entry.Kind)
			suite.Equal(domain.StatusPaid, entry.PaymentStatus)
			suite.True(entry.AmountPaid.Equal(entry.Total))
			suite.True(entry.Balance.IsZero())
			suite.Require().NotNil(entry.Payment)
			suite.Equal(domain.PaymentCash, entry.Payment.PaymentType)
			suite.Empty(entry.Payment.BankAccountID)
		}).
		Return(persisted, allocations, decimal.Zero, nil).Once()

	resp, err := suite.service.RecordPayment(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(resp.Allocations, 1)
	suite.True(resp.UnallocatedAmount.IsZero())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_SurplusReported() {
	req := dto.CreatePaymentRequest{
		CustomerID:  suite.customer.CustomerID,
		EntryDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("1000"),
		PaymentType: string(domain.PaymentCash),
	}
	persisted := &domain.LedgerEntry{
		EntryID: uuid.NewString(),
		Kind:    domain.KindPayment,
		Payment: &domain.PaymentDetails{PaymentType: domain.PaymentCash},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockLedgerRepo.On("SavePaymentEntry", suite.ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Return(persisted, []domain.EntryAllocation{}, decimal.RequireFromString("600"), nil).Once()

	resp, err := suite.service.RecordPayment(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.UnallocatedAmount.Equal(decimal.RequireFromString("600")))
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_ZeroAmountRecordsEntryWithoutAllocation() {
	req := dto.CreatePaymentRequest{
		CustomerID:  suite.customer.CustomerID,
		EntryDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.Zero,
		PaymentType: string(domain.PaymentCash),
	}
	persisted := &domain.LedgerEntry{
		EntryID: uuid.NewString(),
		Kind:    domain.KindPayment,
		Total:   decimal.Zero,
		Payment: &domain.PaymentDetails{PaymentType: domain.PaymentCash},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockLedgerRepo.On("SavePaymentEntry", suite.ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.LedgerEntry)
			suite.True(entry.Total.IsZero())
			suite.Equal(domain.KindPayment, entry.Kind)
		}).
		Return(persisted, []domain.EntryAllocation{}, decimal.Zero, nil).Once()

	resp, err := suite.service.RecordPayment(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(resp.Allocations)
	suite.True(resp.UnallocatedAmount.IsZero())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_NegativeAmount() {
	req := dto.CreatePaymentRequest{
		CustomerID:  suite.customer.CustomerID,
		EntryDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-50"),
		PaymentType: string(domain.PaymentCash),
	}

	_, err := suite.service.RecordPayment(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrAmountNegative)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePaymentEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_BankRequiresAccount() {
	req := dto.CreatePaymentRequest{
		CustomerID:  suite.customer.CustomerID,
		EntryDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("100"),
		PaymentType: string(domain.PaymentBank),
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	_, err := suite.service.RecordPayment(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrBankAccountRequired)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_BankAccountOwnershipChecked() {
	otherCustomerAccount := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		CustomerID:    uuid.NewString(),
		IsActive:      true,
	}
	req := dto.CreatePaymentRequest{
		CustomerID:    suite.customer.CustomerID,
		EntryDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString("100"),
		PaymentType:   string(domain.PaymentBank),
		BankAccountID: &otherCustomerAccount.BankAccountID,
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockBankAccountRepo.On("FindBankAccountByID", suite.ctx, otherCustomerAccount.BankAccountID).Return(&otherCustomerAccount, nil).Once()

	_, err := suite.service.RecordPayment(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrBankAccountMismatch)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_DuplicateTransactionRef() {
	ref := "UTR-12345"
	req := dto.CreatePaymentRequest{
		CustomerID:     suite.customer.CustomerID,
		EntryDate:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:         decimal.RequireFromString("100"),
		PaymentType:    string(domain.PaymentCash),
		TransactionRef: &ref,
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockLedgerRepo.On("SavePaymentEntry", suite.ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Return(nil, nil, decimal.Zero, apperrors.ErrDuplicate).Once()

	_, err := suite.service.RecordPayment(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerServiceTestSuite) TestGetCustomerBalance_Advance() {
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockLedgerRepo.On("SumByKind", suite.ctx, suite.customer.CustomerID, domain.KindStock).
		Return(decimal.RequireFromString("1000"), nil).Once()
	suite.mockLedgerRepo.On("SumByKind", suite.ctx, suite.customer.CustomerID, domain.KindPayment).
		Return(decimal.RequireFromString("1400"), nil).Once()
	suite.mockLedgerRepo.On("SumOutstanding", suite.ctx, suite.customer.CustomerID).
		Return(decimal.Zero, nil).Once()

	balance, err := suite.service.GetCustomerBalance(suite.ctx, suite.customer.CustomerID)

	suite.Require().NoError(err)
	suite.True(balance.NetBalance.Equal(decimal.RequireFromString("-400")))
	suite.True(balance.IsAdvance)
	suite.True(balance.AdvanceAmount.Equal(decimal.RequireFromString("400")))
}

func (suite *LedgerServiceTestSuite) TestGetCustomerBalance_Outstanding() {
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockLedgerRepo.On("SumByKind", suite.ctx, suite.customer.CustomerID, domain.KindStock).
		Return(decimal.RequireFromString("1000"), nil).Once()
	suite.mockLedgerRepo.On("SumByKind", suite.ctx, suite.customer.CustomerID, domain.KindPayment).
		Return(decimal.RequireFromString("600"), nil).Once()
	suite.mockLedgerRepo.On("SumOutstanding", suite.ctx, suite.customer.CustomerID).
		Return(decimal.RequireFromString("400"), nil).Once()

	balance, err := suite.service.GetCustomerBalance(suite.ctx, suite.customer.CustomerID)

	suite.Require().NoError(err)
	suite.True(balance.NetBalance.Equal(decimal.RequireFromString("400")))
	suite.False(balance.IsAdvance)
	suite.True(balance.TotalPending.Equal(decimal.RequireFromString("400")))
}

func (suite *LedgerServiceTestSuite) TestListCustomerEntries_PassesTokenThrough() {
	token := "opaque-token"
	params := dto.ListEntriesParams{Limit: 20, NextToken: &token}
	entries := []domain.LedgerEntry{
		{EntryID: "e1", Kind: domain.KindStock, Total: decimal.RequireFromString("100")},
	}
	next := "next-token"
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByCustomer", suite.ctx, suite.customer.CustomerID, 20, &token).
		Return(entries, next, nil).Once()
	suite.mockLedgerRepo.On("SumOutstanding", suite.ctx, suite.customer.CustomerID).
		Return(decimal.RequireFromString("100"), nil).Once()

	page, err := suite.service.ListCustomerEntries(suite.ctx, suite.customer.CustomerID, params)

	suite.Require().NoError(err)
	suite.Len(page.Entries, 1)
	suite.Require().NotNil(page.NextToken)
	suite.Equal(next, *page.NextToken)
	suite.True(page.TotalPending.Equal(decimal.RequireFromString("100")))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestGetEntryByID_NotFound(t *testing.T) {
	mockLedgerRepo := new(MockLedgerRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockBankAccountRepo := new(MockBankAccountRepository)
	mockAuditSvc := new(MockAuditService)
	svc := services.NewLedgerService(mockLedgerRepo, mockCustomerRepo, mockBankAccountRepo, mockAuditSvc)

	mockLedgerRepo.On("FindEntryByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.GetEntryByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
