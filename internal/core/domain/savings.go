package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsTransactionType classifies entries in the append-only savings log.
type SavingsTransactionType string

const (
	SavingsDeposit  SavingsTransactionType = "DEPOSIT"
	SavingsWithdraw SavingsTransactionType = "WITHDRAW"
)

// SavingsTransaction is one append-only entry in a customer's savings log.
// The savings balance is always derived as sum(deposits) - sum(withdrawals);
// it is never cached.
type SavingsTransaction struct {
	TransactionID string                 `json:"transactionID"`
	CustomerID    string                 `json:"customerID"`
	Type          SavingsTransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}
