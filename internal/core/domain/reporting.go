package domain

import "github.com/shopspring/decimal"

// LoanSnapshot pairs a loan with its derived position.
type LoanSnapshot struct {
	Loan     LoanAccount  `json:"loan"`
	Position LoanPosition `json:"position"`
}

// CustomerSnapshot is a customer's full financial picture: the derived savings
// balance plus every loan's derived position.
type CustomerSnapshot struct {
	CustomerID     string          `json:"customerID"`
	SavingsBalance decimal.Decimal `json:"savingsBalance"`
	Loans          []LoanSnapshot  `json:"loans"`
}
