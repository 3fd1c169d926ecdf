package services

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/dto"
)

// BudgetSvcFacade exposes the budget plan snapshot store.
type BudgetSvcFacade interface {
	// SavePlan upserts the (year, scenario) plan and replaces its items wholesale.
	SavePlan(ctx context.Context, req dto.SaveBudgetPlanRequest, creatorUserID string) (*domain.BudgetPlan, error)

	// GetPlan retrieves a plan and its items.
	GetPlan(ctx context.Context, year int, scenario string) (*domain.BudgetPlan, error)

	// ListPlans retrieves plan headers for a year.
	ListPlans(ctx context.Context, year int) ([]domain.BudgetPlan, error)
}
