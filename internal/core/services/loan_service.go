package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
)

var (
	ErrLoanNotActive      = errors.New("loan is not active")
	ErrRepaymentExceeds   = errors.New("repayment exceeds total outstanding")
	ErrInvalidLoanAmounts = errors.New("loan amounts must be positive")
)

// loanService owns the loan lifecycle and the payment waterfall allocator.
type loanService struct {
	loanRepo   portsrepo.LoanRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
	roles      domain.RoleMapping
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, accountSvc portssvc.AccountSvcFacade, roles domain.RoleMapping) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:   loanRepo,
		accountSvc: accountSvc,
		roles:      roles,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateLoan creates a loan and disburses it atomically: the loan row, its
// disbursement log entry, and the disbursement journal (debit loan-receivable,
// credit cash) are written in one transaction.
func (s *loanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, creatorUserID string) (*domain.LoanAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidLoanAmounts)
	}
	if req.InterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrValidation)
	}
	if !req.DueDate.After(req.IssuedAt) {
		return nil, fmt.Errorf("%w: due date must be after issue date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	principal := accounting.RoundCents(req.Principal)
	loan := domain.LoanAccount{
		LoanID:       uuid.NewString(),
		CustomerID:   req.CustomerID,
		Principal:    principal,
		Balance:      principal,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		Status:       domain.LoanActive,
		IssuedAt:     req.IssuedAt,
		DueDate:      req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	txn := domain.LoanTransaction{
		TransactionID: uuid.NewString(),
		LoanID:        loan.LoanID,
		Type:          domain.LoanDisbursement,
		Amount:        principal,
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
	}

	entry := domain.JournalEntry{
		JournalID: uuid.NewString(),
		EntryDate: req.IssuedAt,
		Memo:      fmt.Sprintf("Loan disbursement %s", loan.LoanID),
		Reference: loan.LoanID,
		Status:    domain.Posted,
		PostedAt:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	lines, err := resolveRecipeLines(ctx, s.accountSvc, s.roles, entry, []roleLeg{
		{Role: domain.RoleLoanReceivable, Debit: principal, Description: "Loan disbursement"},
		{Role: domain.RoleCash, Credit: principal, Description: "Loan disbursement"},
	})
	if err != nil {
		return nil, err
	}

	number, err := s.loanRepo.CreateLoanWithDisbursement(ctx, loan, txn, entry, lines)
	if err != nil {
		logger.Error("Failed to create loan", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	logger.Info("Loan created and disbursed",
		slog.String("loan_id", loan.LoanID),
		slog.String("customer_id", loan.CustomerID),
		slog.String("journal_number", number))
	return &loan, nil
}

// GetLoan retrieves a loan by ID.
func (s *loanService) GetLoan(ctx context.Context, loanID string) (*domain.LoanAccount, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	return loan, nil
}

// ListLoansByCustomer retrieves all loans belonging to a customer.
func (s *loanService) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.LoanAccount, error) {
	return s.loanRepo.ListLoansByCustomer(ctx, customerID)
}

// GetPosition derives the loan's outstanding position from its log.
func (s *loanService) GetPosition(ctx context.Context, loanID string) (*domain.LoanPosition, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	accrued, repaid, err := s.loanRepo.SumLoanTransactions(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum loan transactions for %s: %w", loanID, err)
	}
	position := accounting.ComputePosition(loan.Principal, accrued, repaid)
	return &position, nil
}

// AccrueInterest appends an interest entry to the loan's log. The journal
// crediting interest-income is posted when the interest is collected.
func (s *loanService) AccrueInterest(ctx context.Context, loanID string, amount decimal.Decimal, creatorUserID string) (*domain.LoanTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: interest amount must be positive", apperrors.ErrValidation)
	}
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	if loan.Status != domain.LoanActive {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrLoanNotActive)
	}

	txn := domain.LoanTransaction{
		TransactionID: uuid.NewString(),
		LoanID:        loanID,
		Type:          domain.LoanInterest,
		Amount:        accounting.RoundCents(amount),
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     creatorUserID,
	}
	if err := s.loanRepo.AppendLoanTransaction(ctx, txn); err != nil {
		logger.Error("Failed to append interest transaction", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to record interest accrual: %w", err)
	}

	logger.Info("Interest accrued", slog.String("loan_id", loanID), slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// RecordRepayment applies a payment to the loan, interest first then
// principal. The repository runs the planner under a FOR UPDATE lock on the
// loan row (and an advisory lock on the customer's savings when funded from
// savings), so validation and writes cannot interleave with a concurrent
// repayment reading the same position.
func (s *loanService) RecordRepayment(ctx context.Context, req dto.LoanRepaymentRequest, creatorUserID string) (*dto.RepaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount := accounting.RoundCents(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: repayment amount must be positive", apperrors.ErrValidation)
	}
	source := domain.RepaymentSource(req.Source)
	if source != domain.RepaymentFromCash && source != domain.RepaymentFromSavings {
		return nil, fmt.Errorf("%w: unknown repayment source %q", apperrors.ErrValidation, req.Source)
	}

	fundingRole := domain.RoleCash
	if source == domain.RepaymentFromSavings {
		fundingRole = domain.RoleSavingsLiability
	}
	// Account codes are stable configuration; resolve before taking locks.
	now := time.Now().UTC()
	entry := domain.JournalEntry{
		JournalID: uuid.NewString(),
		EntryDate: now,
		Memo:      fmt.Sprintf("Loan repayment %s", req.LoanID),
		Reference: req.LoanID,
		Status:    domain.Posted,
		PostedAt:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	planner := func(loan domain.LoanAccount, position domain.LoanPosition, savingsBalance decimal.Decimal) (*portsrepo.RepaymentPlan, error) {
		if loan.Status != domain.LoanActive {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrLoanNotActive)
		}
		if amount.GreaterThan(position.TotalOutstanding) {
			return nil, fmt.Errorf("%w: %w: amount %s, outstanding %s",
				apperrors.ErrInsufficientBalance, ErrRepaymentExceeds, amount.String(), position.TotalOutstanding.String())
		}
		if source == domain.RepaymentFromSavings && amount.GreaterThan(savingsBalance) {
			return nil, fmt.Errorf("%w: savings balance %s does not cover repayment %s",
				apperrors.ErrInsufficientBalance, savingsBalance.String(), amount.String())
		}

		alloc := accounting.AllocateRepayment(position, amount)

		lines, err := resolveRecipeLines(ctx, s.accountSvc, s.roles, entry, []roleLeg{
			{Role: fundingRole, Debit: alloc.Amount, Description: "Loan repayment"},
			{Role: domain.RoleLoanReceivable, Credit: alloc.PrincipalPortion, Description: "Principal repaid"},
			{Role: domain.RoleInterestIncome, Credit: alloc.InterestPortion, Description: "Interest collected"},
		})
		if err != nil {
			return nil, err
		}

		plan := &portsrepo.RepaymentPlan{
			Allocation: alloc,
			LoanTxn: domain.LoanTransaction{
				TransactionID: uuid.NewString(),
				LoanID:        loan.LoanID,
				Type:          domain.LoanRepayment,
				Amount:        alloc.Amount,
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
			},
			Entry:     entry,
			Lines:     lines,
			NewStatus: loan.Status,
		}
		if alloc.Closes {
			plan.NewStatus = domain.LoanClosed
		}
		if source == domain.RepaymentFromSavings {
			plan.SavingsTxn = &domain.SavingsTransaction{
				TransactionID: uuid.NewString(),
				CustomerID:    loan.CustomerID,
				Type:          domain.SavingsWithdraw,
				Amount:        alloc.Amount,
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
			}
		}
		return plan, nil
	}

	result, err := s.loanRepo.RecordRepayment(ctx, req.LoanID, source, planner)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInsufficientBalance) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to record repayment", slog.String("error", err.Error()), slog.String("loan_id", req.LoanID))
		}
		return nil, err
	}

	alloc := result.Plan.Allocation
	logger.Info("Repayment recorded",
		slog.String("loan_id", req.LoanID),
		slog.String("amount", alloc.Amount.String()),
		slog.String("interest_portion", alloc.InterestPortion.String()),
		slog.String("principal_portion", alloc.PrincipalPortion.String()),
		slog.String("new_status", string(result.Plan.NewStatus)))

	return &dto.RepaymentResponse{
		LoanID:           req.LoanID,
		Amount:           alloc.Amount,
		InterestPortion:  alloc.InterestPortion,
		PrincipalPortion: alloc.PrincipalPortion,
		NewBalance:       alloc.NewBalance,
		NewOutstanding:   alloc.NewOutstanding,
		Status:           string(result.Plan.NewStatus),
		JournalNumber:    result.JournalNumber,
	}, nil
}
