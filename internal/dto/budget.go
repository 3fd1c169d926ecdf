package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// BudgetItemRequest is one budgeted amount keyed by account code.
type BudgetItemRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes"`
}

// SaveBudgetPlanRequest defines the payload for saving a budget snapshot.
// Items replace the plan's existing items wholesale.
type SaveBudgetPlanRequest struct {
	Year     int                 `json:"year" binding:"required"`
	Scenario string              `json:"scenario" binding:"required"`
	Items    []BudgetItemRequest `json:"items" binding:"required"`
}

// BudgetItemResponse defines the data returned for a budget item.
type BudgetItemResponse struct {
	ItemID      string          `json:"itemID"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
}

// BudgetPlanResponse defines the data returned for a budget plan.
type BudgetPlanResponse struct {
	PlanID   string               `json:"planID"`
	Year     int                  `json:"year"`
	Scenario string               `json:"scenario"`
	Items    []BudgetItemResponse `json:"items,omitempty"`
}

// ToBudgetPlanResponse converts a domain.BudgetPlan to BudgetPlanResponse.
func ToBudgetPlanResponse(p *domain.BudgetPlan) BudgetPlanResponse {
	resp := BudgetPlanResponse{
		PlanID:   p.PlanID,
		Year:     p.Year,
		Scenario: p.Scenario,
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, BudgetItemResponse{
			ItemID:      item.ItemID,
			AccountCode: item.AccountCode,
			Amount:      item.Amount,
			Notes:       item.Notes,
		})
	}
	return resp
}
