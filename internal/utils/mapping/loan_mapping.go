package mapping

import (
	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/models"
)

// ToModelLoanAccount converts a domain.LoanAccount for DB storage.
func ToModelLoanAccount(d domain.LoanAccount) models.LoanAccount {
	return models.LoanAccount{
		LoanID:       d.LoanID,
		CustomerID:   d.CustomerID,
		Principal:    d.Principal,
		Balance:      d.Balance,
		InterestRate: d.InterestRate,
		TermMonths:   d.TermMonths,
		Status:       string(d.Status),
		IssuedAt:     d.IssuedAt,
		DueDate:      d.DueDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoanAccount converts a models.LoanAccount from the DB.
func ToDomainLoanAccount(m models.LoanAccount) domain.LoanAccount {
	return domain.LoanAccount{
		LoanID:       m.LoanID,
		CustomerID:   m.CustomerID,
		Principal:    m.Principal,
		Balance:      m.Balance,
		InterestRate: m.InterestRate,
		TermMonths:   m.TermMonths,
		Status:       domain.LoanStatus(m.Status),
		IssuedAt:     m.IssuedAt,
		DueDate:      m.DueDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLoanTransaction converts a domain.LoanTransaction for DB storage.
func ToModelLoanTransaction(d domain.LoanTransaction) models.LoanTransaction {
	return models.LoanTransaction{
		TransactionID: d.TransactionID,
		LoanID:        d.LoanID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainLoanTransaction converts a models.LoanTransaction from the DB.
func ToDomainLoanTransaction(m models.LoanTransaction) domain.LoanTransaction {
	return domain.LoanTransaction{
		TransactionID: m.TransactionID,
		LoanID:        m.LoanID,
		Type:          domain.LoanTransactionType(m.Type),
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
