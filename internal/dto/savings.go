package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// SavingsTransactionRequest defines the payload for a savings movement.
type SavingsTransactionRequest struct {
	CustomerID string          `json:"customerID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Reference  string          `json:"reference"`
}

// SavingsTransactionResponse defines the data returned for a savings movement.
type SavingsTransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	CustomerID    string          `json:"customerID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToSavingsTransactionResponse converts a domain.SavingsTransaction.
func ToSavingsTransactionResponse(t *domain.SavingsTransaction) SavingsTransactionResponse {
	return SavingsTransactionResponse{
		TransactionID: t.TransactionID,
		CustomerID:    t.CustomerID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		CreatedAt:     t.CreatedAt,
	}
}

// ToSavingsTransactionResponses converts a slice of savings transactions.
func ToSavingsTransactionResponses(txns []domain.SavingsTransaction) []SavingsTransactionResponse {
	responses := make([]SavingsTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToSavingsTransactionResponse(&txns[i])
	}
	return responses
}
