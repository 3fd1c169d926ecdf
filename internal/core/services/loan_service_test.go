package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/core/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
)

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo   *MockLoanRepository
	mockAccountSvc *MockAccountService
	service        portssvc.LoanSvcFacade
	ctx            context.Context
}

func (s *LoanServiceTestSuite) SetupTest() {
	s.mockLoanRepo = new(MockLoanRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.service = services.NewLoanService(s.mockLoanRepo, s.mockAccountSvc, testRoles())
	s.ctx = context.Background()
}

// activeLoanFixture seeds the mock repository with an active loan of 1000
// principal and 50 accrued interest, nothing repaid.
func (s *LoanServiceTestSuite) activeLoanFixture() {
	s.mockLoanRepo.loan = domain.LoanAccount{
		LoanID:     "loan-1",
		CustomerID: "cust-1",
		Principal:  dec("1000"),
		Balance:    dec("1000"),
		Status:     domain.LoanActive,
	}
	s.mockLoanRepo.position = accounting.ComputePosition(dec("1000"), dec("50"), decimal.Zero)
	s.mockLoanRepo.savingsBalance = decimal.Zero
}

func (s *LoanServiceTestSuite) resolveRepaymentCodes() {
	s.mockAccountSvc.On("ResolveCodes", s.ctx, mock.Anything).
		Return(map[string]string{
			"1000": "acc-cash",
			"1200": "acc-loan",
			"2100": "acc-savings",
			"4100": "acc-interest",
		}, nil)
}

func (s *LoanServiceTestSuite) TestCreateLoanSuccess() {
	issued := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateLoanRequest{
		CustomerID:   "cust-1",
		Principal:    dec("5000"),
		InterestRate: dec("0.12"),
		TermMonths:   12,
		IssuedAt:     issued,
		DueDate:      issued.AddDate(1, 0, 0),
	}

	s.mockAccountSvc.On("ResolveCodes", s.ctx, []string{"1200", "1000"}).
		Return(map[string]string{"1200": "acc-loan", "1000": "acc-cash"}, nil)

	var savedLines []domain.JournalLine
	s.mockLoanRepo.On("CreateLoanWithDisbursement", s.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(4).([]domain.JournalLine)
		}).
		Return("JRN-20260201-000001", nil)

	loan, err := s.service.CreateLoan(s.ctx, req, "officer-1")

	s.Require().NoError(err)
	s.Require().NotNil(loan)
	s.Equal(domain.LoanActive, loan.Status)
	s.True(loan.Balance.Equal(loan.Principal))
	s.Equal("cust-1", loan.CustomerID)

	// Disbursement journal: debit loan-receivable, credit cash, both for the
	// full principal.
	s.Require().Len(savedLines, 2)
	s.True(dec("5000").Equal(savedLines[0].Debit))
	s.Equal("acc-loan", savedLines[0].AccountID)
	s.True(dec("5000").Equal(savedLines[1].Credit))
	s.Equal("acc-cash", savedLines[1].AccountID)
}

func (s *LoanServiceTestSuite) TestCreateLoanNonPositivePrincipal() {
	issued := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateLoanRequest{
		CustomerID: "cust-1",
		Principal:  decimal.Zero,
		TermMonths: 12,
		IssuedAt:   issued,
		DueDate:    issued.AddDate(1, 0, 0),
	}

	loan, err := s.service.CreateLoan(s.ctx, req, "officer-1")

	s.Require().Error(err)
	s.Nil(loan)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrInvalidLoanAmounts)
}

func (s *LoanServiceTestSuite) TestCreateLoanDueDateBeforeIssue() {
	issued := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateLoanRequest{
		CustomerID: "cust-1",
		Principal:  dec("5000"),
		TermMonths: 12,
		IssuedAt:   issued,
		DueDate:    issued.AddDate(0, 0, -1),
	}

	loan, err := s.service.CreateLoan(s.ctx, req, "officer-1")

	s.Require().Error(err)
	s.Nil(loan)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LoanServiceTestSuite) TestRecordRepaymentPartialWaterfall() {
	s.activeLoanFixture()
	s.resolveRepaymentCodes()
	s.mockLoanRepo.On("RecordRepayment", s.ctx, "loan-1", domain.RepaymentFromCash).
		Return("JRN-20260210-000004", nil)

	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: dec("300"),
		Source: "CASH",
	}, "teller-1")

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	// 50 of interest is settled first, the remaining 250 reduces principal.
	s.True(dec("50").Equal(resp.InterestPortion), "interest %s", resp.InterestPortion)
	s.True(dec("250").Equal(resp.PrincipalPortion), "principal %s", resp.PrincipalPortion)
	s.True(dec("750").Equal(resp.NewBalance))
	s.True(dec("750").Equal(resp.NewOutstanding))
	s.Equal("ACTIVE", resp.Status)
	s.Equal("JRN-20260210-000004", resp.JournalNumber)
}

func (s *LoanServiceTestSuite) TestRecordRepaymentFullPayoffCloses() {
	s.activeLoanFixture()
	s.resolveRepaymentCodes()
	s.mockLoanRepo.On("RecordRepayment", s.ctx, "loan-1", domain.RepaymentFromCash).
		Return("JRN-20260210-000005", nil)

	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: dec("1050"),
		Source: "CASH",
	}, "teller-1")

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.True(dec("50").Equal(resp.InterestPortion))
	s.True(dec("1000").Equal(resp.PrincipalPortion))
	s.True(resp.NewOutstanding.IsZero())
	s.Equal("CLOSED", resp.Status)
}

func (s *LoanServiceTestSuite) TestRecordRepaymentExceedsOutstanding() {
	s.activeLoanFixture()
	s.mockLoanRepo.On("RecordRepayment", s.ctx, "loan-1", domain.RepaymentFromCash).
		Return("", nil)

	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: dec("2000"),
		Source: "CASH",
	}, "teller-1")

	s.Require().Error(err)
	s.Nil(resp)
	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
	s.ErrorIs(err, services.ErrRepaymentExceeds)
}

func (s *LoanServiceTestSuite) TestRecordRepaymentSavingsInsufficient() {
	s.activeLoanFixture()
	s.mockLoanRepo.savingsBalance = dec("100")
	s.mockLoanRepo.On("RecordRepayment", s.ctx, "loan-1", domain.RepaymentFromSavings).
		Return("", nil)

	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: dec("300"),
		Source: "SAVINGS",
	}, "teller-1")

	s.Require().Error(err)
	s.Nil(resp)
	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
	s.NotErrorIs(err, services.ErrRepaymentExceeds)
}

func (s *LoanServiceTestSuite) TestRecordRepaymentFromSavingsMirrorsWithdrawal() {
	s.activeLoanFixture()
	s.mockLoanRepo.savingsBalance = dec("500")
	s.resolveRepaymentCodes()

	s.mockLoanRepo.On("RecordRepayment", s.ctx, "loan-1", domain.RepaymentFromSavings).
		Return("JRN-20260210-000006", nil)

	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: dec("300"),
		Source: "SAVINGS",
	}, "teller-1")

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.True(dec("50").Equal(resp.InterestPortion))
	s.True(dec("250").Equal(resp.PrincipalPortion))
}

func (s *LoanServiceTestSuite) TestRecordRepaymentInactiveLoan() {
	s.activeLoanFixture()
	s.mockLoanRepo.loan.Status = domain.LoanClosed
	s.mockLoanRepo.On("RecordRepayment", s.ctx, "loan-1", domain.RepaymentFromCash).
		Return("", nil)

	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: dec("100"),
		Source: "CASH",
	}, "teller-1")

	s.Require().Error(err)
	s.Nil(resp)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, services.ErrLoanNotActive)
}

func (s *LoanServiceTestSuite) TestRecordRepaymentNonPositiveAmount() {
	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: decimal.Zero,
		Source: "CASH",
	}, "teller-1")

	s.Require().Error(err)
	s.Nil(resp)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLoanRepo.AssertNotCalled(s.T(), "RecordRepayment", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LoanServiceTestSuite) TestRecordRepaymentUnknownSource() {
	resp, err := s.service.RecordRepayment(s.ctx, dto.LoanRepaymentRequest{
		LoanID: "loan-1",
		Amount: dec("100"),
		Source: "CHECK",
	}, "teller-1")

	s.Require().Error(err)
	s.Nil(resp)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LoanServiceTestSuite) TestAccrueInterestSuccess() {
	loan := &domain.LoanAccount{LoanID: "loan-1", Status: domain.LoanActive}
	s.mockLoanRepo.On("FindLoanByID", s.ctx, "loan-1").Return(loan, nil)

	var appended domain.LoanTransaction
	s.mockLoanRepo.On("AppendLoanTransaction", s.ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(domain.LoanTransaction)
		}).
		Return(nil)

	txn, err := s.service.AccrueInterest(s.ctx, "loan-1", dec("12.345"), "officer-1")

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.Equal(domain.LoanInterest, appended.Type)
	s.True(dec("12.35").Equal(appended.Amount), "got %s", appended.Amount)
	s.Equal("loan-1", appended.LoanID)
}

func (s *LoanServiceTestSuite) TestAccrueInterestOnClosedLoan() {
	loan := &domain.LoanAccount{LoanID: "loan-1", Status: domain.LoanClosed}
	s.mockLoanRepo.On("FindLoanByID", s.ctx, "loan-1").Return(loan, nil)

	txn, err := s.service.AccrueInterest(s.ctx, "loan-1", dec("10"), "officer-1")

	s.Require().Error(err)
	s.Nil(txn)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, services.ErrLoanNotActive)
	s.mockLoanRepo.AssertNotCalled(s.T(), "AppendLoanTransaction", mock.Anything, mock.Anything)
}

func (s *LoanServiceTestSuite) TestAccrueInterestNonPositive() {
	txn, err := s.service.AccrueInterest(s.ctx, "loan-1", decimal.Zero, "officer-1")

	s.Require().Error(err)
	s.Nil(txn)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LoanServiceTestSuite) TestGetPositionDerivesFromLog() {
	loan := &domain.LoanAccount{LoanID: "loan-1", Principal: dec("1000"), Status: domain.LoanActive}
	s.mockLoanRepo.On("FindLoanByID", s.ctx, "loan-1").Return(loan, nil)
	s.mockLoanRepo.On("SumLoanTransactions", s.ctx, "loan-1").
		Return(dec("50"), dec("300"), nil)

	pos, err := s.service.GetPosition(s.ctx, "loan-1")

	s.Require().NoError(err)
	s.Require().NotNil(pos)
	s.True(dec("750").Equal(pos.PrincipalOutstanding))
	s.True(pos.InterestOutstanding.IsZero())
	s.True(dec("750").Equal(pos.TotalOutstanding))
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
