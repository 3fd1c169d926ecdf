package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
)

// budgetService manages budget plan snapshots. Saving replaces a plan's items
// wholesale; no accounting invariant applies here.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// SavePlan upserts the (year, scenario) plan and replaces its items.
func (s *budgetService) SavePlan(ctx context.Context, req dto.SaveBudgetPlanRequest, creatorUserID string) (*domain.BudgetPlan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Year < 2000 || req.Year > 2200 {
		return nil, fmt.Errorf("%w: implausible budget year %d", apperrors.ErrValidation, req.Year)
	}

	now := time.Now().UTC()
	plan := domain.BudgetPlan{
		Year:     req.Year,
		Scenario: req.Scenario,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Keep the plan ID stable across saves so item history stays attributable.
	existing, err := s.budgetRepo.FindPlan(ctx, req.Year, req.Scenario)
	switch {
	case err == nil:
		plan.PlanID = existing.PlanID
		plan.CreatedAt = existing.CreatedAt
		plan.CreatedBy = existing.CreatedBy
	case errors.Is(err, apperrors.ErrNotFound):
		plan.PlanID = uuid.NewString()
	default:
		return nil, fmt.Errorf("failed to look up budget plan: %w", err)
	}

	items := make([]domain.BudgetItem, len(req.Items))
	for i, itemReq := range req.Items {
		items[i] = domain.BudgetItem{
			ItemID:      uuid.NewString(),
			PlanID:      plan.PlanID,
			AccountCode: itemReq.AccountCode,
			Amount:      accounting.RoundCents(itemReq.Amount),
			Notes:       itemReq.Notes,
		}
	}

	if err := s.budgetRepo.SavePlan(ctx, plan, items); err != nil {
		logger.Error("Failed to save budget plan", slog.String("error", err.Error()),
			slog.Int("year", req.Year), slog.String("scenario", req.Scenario))
		return nil, fmt.Errorf("failed to save budget plan: %w", err)
	}

	plan.Items = items
	logger.Info("Budget plan saved", slog.Int("year", req.Year),
		slog.String("scenario", req.Scenario), slog.Int("items", len(items)))
	return &plan, nil
}

// GetPlan retrieves a plan and its items.
func (s *budgetService) GetPlan(ctx context.Context, year int, scenario string) (*domain.BudgetPlan, error) {
	plan, err := s.budgetRepo.FindPlan(ctx, year, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget plan %d/%s: %w", year, scenario, err)
	}
	return plan, nil
}

// ListPlans retrieves plan headers for a year.
func (s *budgetService) ListPlans(ctx context.Context, year int) ([]domain.BudgetPlan, error) {
	return s.budgetRepo.ListPlans(ctx, year)
}
