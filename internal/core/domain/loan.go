package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus indicates the lifecycle state of a loan account.
type LoanStatus string

const (
	LoanActive    LoanStatus = "ACTIVE"
	LoanClosed    LoanStatus = "CLOSED"
	LoanDefaulted LoanStatus = "DEFAULTED"
)

// LoanTransactionType classifies entries in the append-only loan log.
type LoanTransactionType string

const (
	LoanDisbursement LoanTransactionType = "DISBURSEMENT"
	LoanRepayment    LoanTransactionType = "REPAYMENT"
	LoanInterest     LoanTransactionType = "INTEREST"
	LoanPenalty      LoanTransactionType = "PENALTY"
	LoanAdjustment   LoanTransactionType = "ADJUSTMENT"
)

// LoanAccount is a customer obligation. Balance caches the derived principal
// outstanding and must always equal the figure computed from the transaction log.
type LoanAccount struct {
	LoanID       string          `json:"loanID"`
	CustomerID   string          `json:"customerID"`
	Principal    decimal.Decimal `json:"principal"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
	Status       LoanStatus      `json:"status"`
	IssuedAt     time.Time       `json:"issuedAt"`
	DueDate      time.Time       `json:"dueDate"`
	AuditFields
}

// LoanTransaction is one append-only entry in a loan's log.
type LoanTransaction struct {
	TransactionID string              `json:"transactionID"`
	LoanID        string              `json:"loanID"`
	Type          LoanTransactionType `json:"type"`
	Amount        decimal.Decimal     `json:"amount"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
}

// LoanPosition is the derived outstanding state of a loan at a point in time.
type LoanPosition struct {
	Principal            decimal.Decimal `json:"principal"`
	AccruedInterest      decimal.Decimal `json:"accruedInterest"`
	TotalRepayments      decimal.Decimal `json:"totalRepayments"`
	InterestPaid         decimal.Decimal `json:"interestPaid"`
	PrincipalPaid        decimal.Decimal `json:"principalPaid"`
	PrincipalOutstanding decimal.Decimal `json:"principalOutstanding"`
	InterestOutstanding  decimal.Decimal `json:"interestOutstanding"`
	TotalOutstanding     decimal.Decimal `json:"totalOutstanding"`
}

// RepaymentSource identifies the funding side of a loan repayment.
type RepaymentSource string

const (
	RepaymentFromCash    RepaymentSource = "CASH"
	RepaymentFromSavings RepaymentSource = "SAVINGS"
)

// RepaymentAllocation is the waterfall split of one accepted repayment.
type RepaymentAllocation struct {
	Amount           decimal.Decimal `json:"amount"`
	InterestPortion  decimal.Decimal `json:"interestPortion"`
	PrincipalPortion decimal.Decimal `json:"principalPortion"`
	NewBalance       decimal.Decimal `json:"newBalance"`
	NewOutstanding   decimal.Decimal `json:"newOutstanding"`
	Closes           bool            `json:"closes"`
}
