package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// RepaymentPlan is everything a repayment writes: the allocation, the loan log
// entry, the optional mirrored savings withdrawal, and the balanced journal.
// It is produced by a RepaymentPlanner from the position derived under lock.
type RepaymentPlan struct {
	Allocation domain.RepaymentAllocation
	LoanTxn    domain.LoanTransaction
	SavingsTxn *domain.SavingsTransaction
	Entry      domain.JournalEntry
	Lines      []domain.JournalLine
	NewStatus  domain.LoanStatus
}

// RepaymentPlanner builds a RepaymentPlan from the loan state read inside the
// repayment transaction. savingsBalance is the customer's derived balance, only
// populated when the repayment is funded from savings. Returning an error
// aborts the transaction with nothing written.
type RepaymentPlanner func(loan domain.LoanAccount, position domain.LoanPosition, savingsBalance decimal.Decimal) (*RepaymentPlan, error)

// RepaymentResult reports what an accepted repayment wrote.
type RepaymentResult struct {
	Plan          RepaymentPlan
	JournalNumber string
}

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.LoanAccount, error)

	// ListLoansByCustomer retrieves all loans belonging to a customer.
	ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.LoanAccount, error)

	// FindLoanTransactions retrieves a loan's append-only log, oldest first.
	FindLoanTransactions(ctx context.Context, loanID string) ([]domain.LoanTransaction, error)

	// SumLoanTransactions derives the accrued interest and cumulative
	// repayments from the loan's log.
	SumLoanTransactions(ctx context.Context, loanID string) (accruedInterest, totalRepayments decimal.Decimal, err error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// CreateLoanWithDisbursement inserts the loan, its disbursement log entry,
	// and the disbursement journal in one transaction. Returns the assigned
	// journal number.
	CreateLoanWithDisbursement(ctx context.Context, loan domain.LoanAccount, txn domain.LoanTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (string, error)

	// AppendLoanTransaction appends an entry (interest accrual, penalty,
	// adjustment) to the loan's log.
	AppendLoanTransaction(ctx context.Context, txn domain.LoanTransaction) error

	// RecordRepayment executes the full repayment sequence in one transaction:
	// it locks the loan row FOR UPDATE, derives the position (and, for
	// savings-funded repayments, the customer's savings balance under an
	// advisory lock), asks the planner for the writes, persists them, updates
	// the loan's cached balance and status, and commits. A planner error rolls
	// everything back.
	RecordRepayment(ctx context.Context, loanID string, source domain.RepaymentSource, planner RepaymentPlanner) (*RepaymentResult, error)
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
