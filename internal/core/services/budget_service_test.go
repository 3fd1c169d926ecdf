package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/core/services"
	"github.com/kliniku/ledgercore/internal/dto"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	service        portssvc.BudgetSvcFacade
	ctx            context.Context
}

func (s *BudgetServiceTestSuite) SetupTest() {
	s.mockBudgetRepo = new(MockBudgetRepository)
	s.service = services.NewBudgetService(s.mockBudgetRepo)
	s.ctx = context.Background()
}

func (s *BudgetServiceTestSuite) TestSavePlanNew() {
	req := dto.SaveBudgetPlanRequest{
		Year:     2026,
		Scenario: "BASE",
		Items: []dto.BudgetItemRequest{
			{AccountCode: "4000", Amount: dec("120000.005")},
			{AccountCode: "5000", Amount: dec("80000")},
		},
	}

	s.mockBudgetRepo.On("FindPlan", s.ctx, 2026, "BASE").
		Return(nil, apperrors.ErrNotFound)

	var savedItems []domain.BudgetItem
	s.mockBudgetRepo.On("SavePlan", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedItems = args.Get(2).([]domain.BudgetItem)
		}).
		Return(nil)

	plan, err := s.service.SavePlan(s.ctx, req, "planner-1")

	s.Require().NoError(err)
	s.Require().NotNil(plan)
	s.NotEmpty(plan.PlanID)
	s.Equal(2026, plan.Year)
	s.Require().Len(savedItems, 2)
	s.Equal(plan.PlanID, savedItems[0].PlanID)
	s.True(dec("120000.01").Equal(savedItems[0].Amount), "got %s", savedItems[0].Amount)
}

func (s *BudgetServiceTestSuite) TestSavePlanKeepsExistingID() {
	existing := &domain.BudgetPlan{PlanID: "plan-1", Year: 2026, Scenario: "BASE"}
	s.mockBudgetRepo.On("FindPlan", s.ctx, 2026, "BASE").Return(existing, nil)
	s.mockBudgetRepo.On("SavePlan", s.ctx, mock.Anything, mock.Anything).Return(nil)

	plan, err := s.service.SavePlan(s.ctx, dto.SaveBudgetPlanRequest{
		Year:     2026,
		Scenario: "BASE",
		Items:    []dto.BudgetItemRequest{{AccountCode: "4000", Amount: dec("1")}},
	}, "planner-1")

	s.Require().NoError(err)
	s.Require().NotNil(plan)
	s.Equal("plan-1", plan.PlanID)
}

func (s *BudgetServiceTestSuite) TestSavePlanImplausibleYear() {
	plan, err := s.service.SavePlan(s.ctx, dto.SaveBudgetPlanRequest{
		Year:     1776,
		Scenario: "BASE",
	}, "planner-1")

	s.Require().Error(err)
	s.Nil(plan)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockBudgetRepo.AssertNotCalled(s.T(), "SavePlan", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BudgetServiceTestSuite) TestGetPlanNotFound() {
	s.mockBudgetRepo.On("FindPlan", s.ctx, 2026, "UPSIDE").
		Return(nil, apperrors.ErrNotFound)

	plan, err := s.service.GetPlan(s.ctx, 2026, "UPSIDE")

	s.Require().Error(err)
	s.Nil(plan)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
