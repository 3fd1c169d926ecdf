package models

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account represents a chart-of-accounts row.
// ParentAccountID is empty for root accounts (stored as NULL).
type Account struct {
	AccountID       string      `db:"account_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID string      `db:"parent_account_id"`
	Description     string      `db:"description"`
	IsActive        bool        `db:"is_active"`
	AuditFields
}
