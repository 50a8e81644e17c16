package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/core/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

type BankAccountServiceTestSuite struct {
	suite.Suite
	mockBankAccountRepo *MockBankAccountRepository
	mockCustomerRepo    *MockCustomerRepository
	mockAuditSvc        *MockAuditService
	service             portssvc.BankAccountSvcFacade
	customerID          string
	userID              string
	ctx                 context.Context
}

func (suite *BankAccountServiceTestSuite) SetupTest() {
	suite.mockBankAccountRepo = new(MockBankAccountRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewBankAccountService(suite.mockBankAccountRepo, suite.mockCustomerRepo, suite.mockAuditSvc)

	suite.customerID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customerID).
		Return(&domain.Customer{CustomerID: suite.customerID, Name: "Ravi Traders"}, nil).Maybe()
	suite.mockAuditSvc.On("RecordAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (suite *BankAccountServiceTestSuite) TestAddBankAccount_FirstAccountBecomesDefault() {
	req := dto.CreateBankAccountRequest{
		AccountHolderName: "Ravi Kumar",
		BankName:          "State Bank",
		AccountNumber:     "000123456789",
		IFSCCode:          "SBIN0001234",
	}

	var savedID string
	suite.mockBankAccountRepo.On("SaveBankAccount", suite.ctx, mock.AnythingOfType("domain.BankAccount")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.BankAccount)
			savedID = account.BankAccountID
			suite.True(account.IsActive)
			suite.False(account.IsDefault)
			suite.Equal(suite.userID, account.CreatedBy)
		}).
		Return(nil).Once()
	// The repository promotes the customer's first account to default.
	suite.mockBankAccountRepo.On("FindBankAccountByID", suite.ctx, mock.AnythingOfType("string")).
		Return(&domain.BankAccount{CustomerID: suite.customerID, AccountNumber: "000123456789", IsActive: true, IsDefault: true}, nil).Once()

	account, err := suite.service.AddBankAccount(suite.ctx, suite.customerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(account.IsDefault)
	suite.NotEmpty(savedID)
	suite.mockBankAccountRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestAddBankAccount_CustomerNotFound() {
	missingID := uuid.NewString()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddBankAccount(suite.ctx, missingID, dto.CreateBankAccountRequest{}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBankAccountRepo.AssertNotCalled(suite.T(), "SaveBankAccount", mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestAddBankAccount_DuplicateAccountNumber() {
	suite.mockBankAccountRepo.On("SaveBankAccount", suite.ctx, mock.AnythingOfType("domain.BankAccount")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.AddBankAccount(suite.ctx, suite.customerID, dto.CreateBankAccountRequest{AccountNumber: "000123456789"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockBankAccountRepo.AssertNotCalled(suite.T(), "FindBankAccountByID", mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestListBankAccounts_Success() {
	accounts := []domain.BankAccount{
		{BankAccountID: uuid.NewString(), CustomerID: suite.customerID, IsDefault: true},
		{BankAccountID: uuid.NewString(), CustomerID: suite.customerID},
	}
	suite.mockBankAccountRepo.On("ListBankAccountsByCustomer", suite.ctx, suite.customerID).Return(accounts, nil).Once()

	got, err := suite.service.ListBankAccounts(suite.ctx, suite.customerID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.True(got[0].IsDefault)
}

func (suite *BankAccountServiceTestSuite) TestSetDefaultBankAccount_Success() {
	bankAccountID := uuid.NewString()
	suite.mockBankAccountRepo.On("SetDefault", suite.ctx, suite.customerID, bankAccountID, suite.userID).Return(nil).Once()

	err := suite.service.SetDefaultBankAccount(suite.ctx, suite.customerID, bankAccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockBankAccountRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestSetDefaultBankAccount_NotFound() {
	bankAccountID := uuid.NewString()
	suite.mockBankAccountRepo.On("SetDefault", suite.ctx, suite.customerID, bankAccountID, suite.userID).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.SetDefaultBankAccount(suite.ctx, suite.customerID, bankAccountID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBankAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankAccountServiceTestSuite))
}
