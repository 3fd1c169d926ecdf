package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/dto"
)

// LoanSvcFacade exposes loan lifecycle and repayment allocation operations.
type LoanSvcFacade interface {
	// CreateLoan creates a loan and disburses it in one atomic operation:
	// loan row, disbursement log entry, and the disbursement journal.
	CreateLoan(ctx context.Context, req dto.CreateLoanRequest, creatorUserID string) (*domain.LoanAccount, error)

	// GetLoan retrieves a loan by ID.
	GetLoan(ctx context.Context, loanID string) (*domain.LoanAccount, error)

	// ListLoansByCustomer retrieves all loans belonging to a customer.
	ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.LoanAccount, error)

	// GetPosition derives the loan's outstanding position from its log.
	GetPosition(ctx context.Context, loanID string) (*domain.LoanPosition, error)

	// AccrueInterest appends an interest entry to the loan's log. The interest
	// income journal is posted when the interest is collected, not here.
	AccrueInterest(ctx context.Context, loanID string, amount decimal.Decimal, creatorUserID string) (*domain.LoanTransaction, error)

	// RecordRepayment applies a payment to the loan, interest first then
	// principal, funded from cash or the customer's savings. The whole
	// read-validate-write sequence runs under a row lock.
	RecordRepayment(ctx context.Context, req dto.LoanRepaymentRequest, creatorUserID string) (*dto.RepaymentResponse, error)
}
