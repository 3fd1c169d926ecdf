package mapping

import (
	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/models"
)

// ToModelSavingsTransaction converts a domain.SavingsTransaction for DB storage.
func ToModelSavingsTransaction(d domain.SavingsTransaction) models.SavingsTransaction {
	return models.SavingsTransaction{
		TransactionID: d.TransactionID,
		CustomerID:    d.CustomerID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainSavingsTransaction converts a models.SavingsTransaction from the DB.
func ToDomainSavingsTransaction(m models.SavingsTransaction) domain.SavingsTransaction {
	return domain.SavingsTransaction{
		TransactionID: m.TransactionID,
		CustomerID:    m.CustomerID,
		Type:          domain.SavingsTransactionType(m.Type),
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
