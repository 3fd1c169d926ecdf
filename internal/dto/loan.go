package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// CreateLoanRequest defines the payload for creating and disbursing a loan.
type CreateLoanRequest struct {
	CustomerID   string          `json:"customerID" binding:"required"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths" binding:"required,min=1"`
	IssuedAt     time.Time       `json:"issuedAt" binding:"required"`
	DueDate      time.Time       `json:"dueDate" binding:"required"`
}

// AccrueInterestRequest defines the payload for appending interest to a loan.
type AccrueInterestRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// LoanRepaymentRequest defines the payload for recording a repayment.
// LoanID comes from the URL path, not the body.
type LoanRepaymentRequest struct {
	LoanID string          `json:"-"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Source string          `json:"source" binding:"required,oneof=CASH SAVINGS"`
}

// LoanResponse defines the data returned for a loan account.
type LoanResponse struct {
	LoanID       string          `json:"loanID"`
	CustomerID   string          `json:"customerID"`
	Principal    decimal.Decimal `json:"principal"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
	Status       string          `json:"status"`
	IssuedAt     time.Time       `json:"issuedAt"`
	DueDate      time.Time       `json:"dueDate"`
}

// RepaymentResponse reports the waterfall split of an accepted repayment.
type RepaymentResponse struct {
	LoanID           string          `json:"loanID"`
	Amount           decimal.Decimal `json:"amount"`
	InterestPortion  decimal.Decimal `json:"interestPortion"`
	PrincipalPortion decimal.Decimal `json:"principalPortion"`
	NewBalance       decimal.Decimal `json:"newBalance"`
	NewOutstanding   decimal.Decimal `json:"newOutstanding"`
	Status           string          `json:"status"`
	JournalNumber    string          `json:"journalNumber"`
}

// ToLoanResponse converts a domain.LoanAccount to LoanResponse.
func ToLoanResponse(l *domain.LoanAccount) LoanResponse {
	return LoanResponse{
		LoanID:       l.LoanID,
		CustomerID:   l.CustomerID,
		Principal:    l.Principal,
		Balance:      l.Balance,
		InterestRate: l.InterestRate,
		TermMonths:   l.TermMonths,
		Status:       string(l.Status),
		IssuedAt:     l.IssuedAt,
		DueDate:      l.DueDate,
	}
}

// ToLoanResponses converts a slice of domain.LoanAccount to responses.
func ToLoanResponses(loans []domain.LoanAccount) []LoanResponse {
	responses := make([]LoanResponse, len(loans))
	for i := range loans {
		responses[i] = ToLoanResponse(&loans[i])
	}
	return responses
}
