package repositories

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// BudgetRepositoryFacade defines operations for budget plan snapshots.
type BudgetRepositoryFacade interface {
	// FindPlan retrieves a plan and its items by (year, scenario).
	FindPlan(ctx context.Context, year int, scenario string) (*domain.BudgetPlan, error)

	// ListPlans retrieves plan headers for a year.
	ListPlans(ctx context.Context, year int) ([]domain.BudgetPlan, error)

	// SavePlan upserts the plan header and replaces all of its items in one
	// transaction. No diffing.
	SavePlan(ctx context.Context, plan domain.BudgetPlan, items []domain.BudgetItem) error
}
