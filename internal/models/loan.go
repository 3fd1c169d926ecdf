package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanAccount represents a loans row. Balance is the cached principal
// outstanding, kept equal to the derived figure by the repayment transaction.
type LoanAccount struct {
	LoanID       string          `db:"loan_id"`
	CustomerID   string          `db:"customer_id"`
	Principal    decimal.Decimal `db:"principal"`
	Balance      decimal.Decimal `db:"balance"`
	InterestRate decimal.Decimal `db:"interest_rate"`
	TermMonths   int             `db:"term_months"`
	Status       string          `db:"status"`
	IssuedAt     time.Time       `db:"issued_at"`
	DueDate      time.Time       `db:"due_date"`
	AuditFields
}

// LoanTransaction represents a loan_transactions row. Append-only.
type LoanTransaction struct {
	TransactionID string          `db:"transaction_id"`
	LoanID        string          `db:"loan_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
