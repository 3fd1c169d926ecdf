package domain

import "github.com/shopspring/decimal"

// BudgetPlan is a snapshot keyed by (year, scenario). Saving a plan replaces
// its items wholesale; no invariant is enforced on the amounts.
type BudgetPlan struct {
	PlanID   string `json:"planID"`
	Year     int    `json:"year"`
	Scenario string `json:"scenario"`
	AuditFields
	Items []BudgetItem `json:"items,omitempty"`
}

// BudgetItem is one budgeted amount, keyed by account code within its plan.
type BudgetItem struct {
	ItemID      string          `json:"itemID"`
	PlanID      string          `json:"planID"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
}
