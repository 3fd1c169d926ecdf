package models

import "github.com/shopspring/decimal"

// BudgetPlan represents a budget_plans row, unique on (year, scenario).
type BudgetPlan struct {
	PlanID   string `db:"plan_id"`
	Year     int    `db:"year"`
	Scenario string `db:"scenario"`
	AuditFields
}

// BudgetItem represents a budget_items row.
type BudgetItem struct {
	ItemID      string          `db:"item_id"`
	PlanID      string          `db:"plan_id"`
	AccountCode string          `db:"account_code"`
	Amount      decimal.Decimal `db:"amount"`
	Notes       string          `db:"notes"`
}
