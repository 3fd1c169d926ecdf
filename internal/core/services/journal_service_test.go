package services_test

import (
	"context"
	"errors"
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
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.JournalSvcFacade
	ctx             context.Context
	entryDate       time.Time
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.service = services.NewJournalService(s.mockJournalRepo, s.mockAccountSvc, testRoles())
	s.ctx = context.Background()
	s.entryDate = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
}

func (s *JournalServiceTestSuite) TestCreateJournalSuccess() {
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Memo:      "Opening cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("100.005")},
			{AccountCode: "4000", Credit: dec("100.004")},
		},
	}

	s.mockAccountSvc.On("ResolveCodes", s.ctx, []string{"1000", "4000"}).
		Return(map[string]string{"1000": "acc-cash", "4000": "acc-rev"}, nil)

	var savedLines []domain.JournalLine
	s.mockJournalRepo.On("SaveJournal", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return("JRN-20260105-000001", nil)

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal("JRN-20260105-000001", entry.Number)
	s.Equal(domain.Posted, entry.Status)
	s.Equal("user-1", entry.CreatedBy)

	s.Require().Len(savedLines, 2)
	s.Equal("acc-cash", savedLines[0].AccountID)
	s.Equal("acc-rev", savedLines[1].AccountID)
	// Amounts are rounded to cents before persisting.
	s.True(dec("100.01").Equal(savedLines[0].Debit), "got %s", savedLines[0].Debit)
	s.True(dec("100").Equal(savedLines[1].Credit), "got %s", savedLines[1].Credit)
	s.NotEmpty(savedLines[0].LineID)
	s.Equal(entry.JournalID, savedLines[0].JournalID)

	s.mockAccountSvc.AssertExpectations(s.T())
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournalUnbalanced() {
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("100")},
			{AccountCode: "4000", Credit: dec("90")},
		},
	}

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, services.ErrJournalUnbalanced)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalWithinTolerance() {
	// A one-cent discrepancy still posts.
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("100.00")},
			{AccountCode: "4000", Credit: dec("100.01")},
		},
	}

	s.mockAccountSvc.On("ResolveCodes", s.ctx, mock.Anything).
		Return(map[string]string{"1000": "acc-cash", "4000": "acc-rev"}, nil)
	s.mockJournalRepo.On("SaveJournal", s.ctx, mock.Anything, mock.Anything).
		Return("JRN-20260105-000002", nil)

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal("JRN-20260105-000002", entry.Number)
}

func (s *JournalServiceTestSuite) TestCreateJournalNegativeAmount() {
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("-100")},
			{AccountCode: "4000", Credit: dec("-100")},
		},
	}

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrNegativeAmount)
}

func (s *JournalServiceTestSuite) TestCreateJournalMixedLine() {
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("100"), Credit: dec("100")},
			{AccountCode: "4000", Credit: dec("100")},
		},
	}

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrMixedLine)
}

func (s *JournalServiceTestSuite) TestCreateJournalSanitizedToNoop() {
	// Every line is effectively zero, so nothing survives and nothing is
	// written. The nil entry with a nil error is the no-op signal.
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("0.000001")},
			{AccountCode: "4000", Credit: decimal.Zero},
		},
	}

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockAccountSvc.AssertNotCalled(s.T(), "ResolveCodes", mock.Anything, mock.Anything)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalSingleSurvivorIsNoop() {
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("0.000001")},
			{AccountCode: "4000", Credit: decimal.Zero},
			{AccountCode: "2200", Credit: dec("50")},
		},
	}

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalUnknownCode() {
	req := dto.CreateJournalRequest{
		EntryDate: s.entryDate,
		Lines: []dto.JournalLineRequest{
			{AccountCode: "1000", Debit: dec("100")},
			{AccountCode: "9999", Credit: dec("100")},
		},
	}

	// "9999" has no account behind it.
	s.mockAccountSvc.On("ResolveCodes", s.ctx, []string{"1000", "9999"}).
		Return(map[string]string{"1000": "acc-cash"}, nil)

	entry, err := s.service.CreateJournal(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.Nil(entry)
	var cfgErr *apperrors.LedgerConfigError
	s.Require().True(errors.As(err, &cfgErr))
	s.Equal([]string{"9999"}, cfgErr.MissingCodes)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostSaleJournalFullTemplate() {
	req := dto.SaleJournalRequest{
		EntryDate: s.entryDate,
		Subtotal:  dec("100"),
		Discount:  dec("10"),
		Tax:       dec("5"),
		Method:    dto.SalePaidCash,
		Memo:      "POS sale",
	}

	s.mockAccountSvc.On("ResolveCodes", s.ctx, mock.Anything).
		Return(map[string]string{
			"1000": "acc-cash",
			"4010": "acc-disc",
			"4000": "acc-rev",
			"2200": "acc-tax",
		}, nil)

	var savedLines []domain.JournalLine
	s.mockJournalRepo.On("SaveJournal", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return("JRN-20260105-000007", nil)

	entry, err := s.service.PostSaleJournal(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)

	// Customer pays subtotal - discount + tax = 95.
	s.Require().Len(savedLines, 4)
	byCode := make(map[string]domain.JournalLine, len(savedLines))
	for _, line := range savedLines {
		byCode[line.AccountCode] = line
	}
	s.True(dec("95").Equal(byCode["1000"].Debit))
	s.True(dec("10").Equal(byCode["4010"].Debit))
	s.True(dec("100").Equal(byCode["4000"].Credit))
	s.True(dec("5").Equal(byCode["2200"].Credit))
}

func (s *JournalServiceTestSuite) TestPostSaleJournalTaxNoDiscount() {
	req := dto.SaleJournalRequest{
		EntryDate: s.entryDate,
		Subtotal:  dec("100000"),
		Tax:       dec("10000"),
		Method:    dto.SalePaidCash,
	}

	s.mockAccountSvc.On("ResolveCodes", s.ctx, []string{"1000", "4000", "2200"}).
		Return(map[string]string{"1000": "acc-cash", "4000": "acc-rev", "2200": "acc-tax"}, nil)

	var savedLines []domain.JournalLine
	s.mockJournalRepo.On("SaveJournal", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return("JRN-20260105-000009", nil)

	entry, err := s.service.PostSaleJournal(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	// Debit cash 110,000; credit revenue 100,000; credit tax 10,000. The
	// zero discount leg is dropped.
	s.Require().Len(savedLines, 3)
	s.True(dec("110000").Equal(savedLines[0].Debit))
	s.True(dec("100000").Equal(savedLines[1].Credit))
	s.True(dec("10000").Equal(savedLines[2].Credit))
}

func (s *JournalServiceTestSuite) TestPostSaleJournalCollapsesZeroLegs() {
	req := dto.SaleJournalRequest{
		EntryDate: s.entryDate,
		Subtotal:  dec("100"),
		Method:    dto.SalePaidQRIS,
	}

	s.mockAccountSvc.On("ResolveCodes", s.ctx, []string{"1010", "4000"}).
		Return(map[string]string{"1010": "acc-qris", "4000": "acc-rev"}, nil)

	var savedLines []domain.JournalLine
	s.mockJournalRepo.On("SaveJournal", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return("JRN-20260105-000008", nil)

	entry, err := s.service.PostSaleJournal(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	// Discount and tax legs are zero and sanitized away.
	s.Require().Len(savedLines, 2)
	s.True(dec("100").Equal(savedLines[0].Debit))
	s.True(dec("100").Equal(savedLines[1].Credit))
}

func (s *JournalServiceTestSuite) TestPostSaleJournalDiscountExceedsSale() {
	req := dto.SaleJournalRequest{
		EntryDate: s.entryDate,
		Subtotal:  dec("100"),
		Discount:  dec("120"),
		Method:    dto.SalePaidCash,
	}

	entry, err := s.service.PostSaleJournal(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestPostSaleJournalUnknownMethod() {
	req := dto.SaleJournalRequest{
		EntryDate: s.entryDate,
		Subtotal:  dec("100"),
		Method:    dto.SalePaymentMethod("WIRE"),
	}

	entry, err := s.service.PostSaleJournal(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestGetJournalByIDLoadsLines() {
	entry := &domain.JournalEntry{JournalID: "jrn-1", Number: "JRN-20260105-000001"}
	lines := []domain.JournalLine{{LineID: "line-1", JournalID: "jrn-1"}}

	s.mockJournalRepo.On("FindJournalByID", s.ctx, "jrn-1").Return(entry, nil)
	s.mockJournalRepo.On("FindLinesByJournalID", s.ctx, "jrn-1").Return(lines, nil)

	got, err := s.service.GetJournalByID(s.ctx, "jrn-1")

	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Len(got.Lines, 1)
}

func (s *JournalServiceTestSuite) TestGetJournalByIDNotFound() {
	s.mockJournalRepo.On("FindJournalByID", s.ctx, "missing").
		Return(nil, apperrors.ErrNotFound)

	got, err := s.service.GetJournalByID(s.ctx, "missing")

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestListJournalsDefaultsLimit() {
	s.mockJournalRepo.On("ListJournals", s.ctx, (*domain.JournalStatus)(nil), (*domain.DateRange)(nil), 50, 0).
		Return([]domain.JournalEntry{}, nil)

	_, err := s.service.ListJournals(s.ctx, dto.ListJournalsParams{})

	s.Require().NoError(err)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
