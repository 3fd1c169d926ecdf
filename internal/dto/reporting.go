package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// LoanSnapshotResponse pairs a loan with its derived position.
type LoanSnapshotResponse struct {
	Loan     LoanResponse        `json:"loan"`
	Position domain.LoanPosition `json:"position"`
}

// CustomerSnapshotResponse is a customer's derived financial picture.
type CustomerSnapshotResponse struct {
	CustomerID     string                 `json:"customerID"`
	SavingsBalance decimal.Decimal        `json:"savingsBalance"`
	Loans          []LoanSnapshotResponse `json:"loans"`
}

// ToCustomerSnapshotResponse converts a domain.CustomerSnapshot.
func ToCustomerSnapshotResponse(s *domain.CustomerSnapshot) CustomerSnapshotResponse {
	resp := CustomerSnapshotResponse{
		CustomerID:     s.CustomerID,
		SavingsBalance: s.SavingsBalance,
		Loans:          []LoanSnapshotResponse{},
	}
	for _, snap := range s.Loans {
		loan := snap.Loan
		resp.Loans = append(resp.Loans, LoanSnapshotResponse{
			Loan:     ToLoanResponse(&loan),
			Position: snap.Position,
		})
	}
	return resp
}
