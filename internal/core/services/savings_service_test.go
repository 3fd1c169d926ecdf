package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/core/services"
	"github.com/kliniku/ledgercore/internal/dto"
)

type SavingsServiceTestSuite struct {
	suite.Suite
	mockSavingsRepo *MockSavingsRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.SavingsSvcFacade
	ctx             context.Context
}

func (s *SavingsServiceTestSuite) SetupTest() {
	s.mockSavingsRepo = new(MockSavingsRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.service = services.NewSavingsService(s.mockSavingsRepo, s.mockAccountSvc, testRoles())
	s.ctx = context.Background()
}

func (s *SavingsServiceTestSuite) resolveCodes() {
	s.mockAccountSvc.On("ResolveCodes", s.ctx, mock.Anything).
		Return(map[string]string{
			"1000": "acc-cash",
			"1100": "acc-ar",
			"2100": "acc-savings",
		}, nil)
}

func (s *SavingsServiceTestSuite) TestDepositSuccess() {
	s.resolveCodes()

	var savedTxn domain.SavingsTransaction
	var savedLines []domain.JournalLine
	s.mockSavingsRepo.On("RecordSavings", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.SavingsTransaction)
			savedLines = args.Get(3).([]domain.JournalLine)
		}).
		Return("JRN-20260301-000001", nil)

	txn, err := s.service.Deposit(s.ctx, dto.SavingsTransactionRequest{
		CustomerID: "cust-1",
		Amount:     dec("200.005"),
	}, "teller-1")

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.Equal(domain.SavingsDeposit, savedTxn.Type)
	s.Equal("cust-1", savedTxn.CustomerID)
	s.True(dec("200.01").Equal(savedTxn.Amount), "got %s", savedTxn.Amount)

	// Deposit mirrors debit cash / credit savings-liability.
	s.Require().Len(savedLines, 2)
	s.Equal("acc-cash", savedLines[0].AccountID)
	s.True(dec("200.01").Equal(savedLines[0].Debit))
	s.Equal("acc-savings", savedLines[1].AccountID)
	s.True(dec("200.01").Equal(savedLines[1].Credit))
}

func (s *SavingsServiceTestSuite) TestWithdrawSuccess() {
	s.resolveCodes()

	var savedTxn domain.SavingsTransaction
	var savedLines []domain.JournalLine
	s.mockSavingsRepo.On("RecordSavings", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.SavingsTransaction)
			savedLines = args.Get(3).([]domain.JournalLine)
		}).
		Return("JRN-20260301-000002", nil)

	txn, err := s.service.Withdraw(s.ctx, dto.SavingsTransactionRequest{
		CustomerID: "cust-1",
		Amount:     dec("80"),
	}, "teller-1")

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.Equal(domain.SavingsWithdraw, savedTxn.Type)

	// Withdrawal mirrors debit savings-liability / credit cash.
	s.Require().Len(savedLines, 2)
	s.Equal("acc-savings", savedLines[0].AccountID)
	s.True(dec("80").Equal(savedLines[0].Debit))
	s.Equal("acc-cash", savedLines[1].AccountID)
	s.True(dec("80").Equal(savedLines[1].Credit))
}

func (s *SavingsServiceTestSuite) TestWithdrawInsufficientBalance() {
	s.resolveCodes()

	// The repository re-derives the balance under the customer lock and
	// rejects the overdraw.
	s.mockSavingsRepo.On("RecordSavings", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: savings balance 10 is less than withdrawal 80", apperrors.ErrInsufficientBalance))

	txn, err := s.service.Withdraw(s.ctx, dto.SavingsTransactionRequest{
		CustomerID: "cust-1",
		Amount:     dec("80"),
	}, "teller-1")

	s.Require().Error(err)
	s.Nil(txn)
	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
}

func (s *SavingsServiceTestSuite) TestDepositNonPositiveAmount() {
	txn, err := s.service.Deposit(s.ctx, dto.SavingsTransactionRequest{
		CustomerID: "cust-1",
		Amount:     decimal.Zero,
	}, "teller-1")

	s.Require().Error(err)
	s.Nil(txn)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockSavingsRepo.AssertNotCalled(s.T(), "RecordSavings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SavingsServiceTestSuite) TestPayReceivableFromSavings() {
	s.resolveCodes()

	var savedTxn domain.SavingsTransaction
	var savedLines []domain.JournalLine
	s.mockSavingsRepo.On("RecordSavings", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.SavingsTransaction)
			savedLines = args.Get(3).([]domain.JournalLine)
		}).
		Return("JRN-20260301-000003", nil)

	txn, err := s.service.PayReceivableFromSavings(s.ctx, dto.SavingsTransactionRequest{
		CustomerID: "cust-1",
		Amount:     dec("150"),
		Reference:  "invoice-42",
	}, "teller-1")

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	// The movement is a withdrawal in the savings log, but the journal
	// settles a receivable instead of paying out cash.
	s.Equal(domain.SavingsWithdraw, savedTxn.Type)
	s.Require().Len(savedLines, 2)
	s.Equal("acc-savings", savedLines[0].AccountID)
	s.True(dec("150").Equal(savedLines[0].Debit))
	s.Equal("acc-ar", savedLines[1].AccountID)
	s.True(dec("150").Equal(savedLines[1].Credit))
}

func (s *SavingsServiceTestSuite) TestBalanceDelegates() {
	s.mockSavingsRepo.On("SumSavings", s.ctx, "cust-1").Return(dec("320.50"), nil)

	balance, err := s.service.Balance(s.ctx, "cust-1")

	s.Require().NoError(err)
	s.True(dec("320.50").Equal(balance))
}

func TestSavingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SavingsServiceTestSuite))
}
