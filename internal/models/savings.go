package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsTransaction represents a savings_transactions row. Append-only; the
// balance is never stored.
type SavingsTransaction struct {
	TransactionID string          `db:"transaction_id"`
	CustomerID    string          `db:"customer_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
