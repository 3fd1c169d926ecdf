package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	Other     AccountType = "OTHER"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense, Other:
		return true
	}
	return false
}

// Account is a node in the chart of accounts.
// Code is unique across the chart; ParentAccountID is empty for root accounts.
type Account struct {
	AccountID       string      `json:"accountID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID,omitempty"`
	Description     string      `json:"description,omitempty"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
