package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	"github.com/kliniku/ledgercore/internal/models"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
	"github.com/kliniku/ledgercore/internal/utils/mapping"
)

const loanColumns = `loan_id, customer_id, principal, balance, interest_rate, term_months, status, issued_at, due_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryFacade
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (models.LoanAccount, error) {
	var m models.LoanAccount
	err := row.Scan(
		&m.LoanID,
		&m.CustomerID,
		&m.Principal,
		&m.Balance,
		&m.InterestRate,
		&m.TermMonths,
		&m.Status,
		&m.IssuedAt,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}

	loan := mapping.ToDomainLoanAccount(m)
	return &loan, nil
}

// ListLoansByCustomer retrieves all loans belonging to a customer, oldest first.
func (r *PgxLoanRepository) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.LoanAccount, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY issued_at;`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	loans := []domain.LoanAccount{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, mapping.ToDomainLoanAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}

	return loans, nil
}

// FindLoanTransactions retrieves a loan's append-only log, oldest first.
func (r *PgxLoanRepository) FindLoanTransactions(ctx context.Context, loanID string) ([]domain.LoanTransaction, error) {
	query := `
		SELECT transaction_id, loan_id, type, amount, created_at, created_by
		FROM loan_transactions
		WHERE loan_id = $1
		ORDER BY created_at, transaction_id;
	`

	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	txns := []domain.LoanTransaction{}
	for rows.Next() {
		var m models.LoanTransaction
		if err := rows.Scan(&m.TransactionID, &m.LoanID, &m.Type, &m.Amount, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan loan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainLoanTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan transaction rows: %w", err)
	}

	return txns, nil
}

// sumLoanTransactions derives accrued interest (interest plus penalties) and
// cumulative repayments from the loan's log using the given querier, so the
// same derivation runs inside and outside the repayment transaction.
func sumLoanTransactions(ctx context.Context, q querier, loanID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type IN ('INTEREST', 'PENALTY')), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'REPAYMENT'), 0)
		FROM loan_transactions
		WHERE loan_id = $1;
	`
	var accrued, repaid decimal.Decimal
	if err := q.QueryRow(ctx, query, loanID).Scan(&accrued, &repaid); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum transactions for loan %s: %w", loanID, err)
	}
	return accrued, repaid, nil
}

// querier is the subset of pgxpool.Pool and pgx.Tx the sum helpers need.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SumLoanTransactions derives the accrued interest and cumulative repayments
// from the loan's log.
func (r *PgxLoanRepository) SumLoanTransactions(ctx context.Context, loanID string) (decimal.Decimal, decimal.Decimal, error) {
	return sumLoanTransactions(ctx, r.Pool, loanID)
}

func insertLoanTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.LoanTransaction) error {
	m := mapping.ToModelLoanTransaction(txn)
	query := `
		INSERT INTO loan_transactions (transaction_id, loan_id, type, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, query, m.TransactionID, m.LoanID, m.Type, m.Amount, m.CreatedAt, m.CreatedBy); err != nil {
		return fmt.Errorf("failed to insert loan transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// CreateLoanWithDisbursement inserts the loan, its disbursement log entry, and
// the disbursement journal in one transaction. Returns the journal number.
func (r *PgxLoanRepository) CreateLoanWithDisbursement(ctx context.Context, loan domain.LoanAccount, txn domain.LoanTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	m := mapping.ToModelLoanAccount(loan)
	insertLoan := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertLoan,
		m.LoanID,
		m.CustomerID,
		m.Principal,
		m.Balance,
		m.InterestRate,
		m.TermMonths,
		m.Status,
		m.IssuedAt,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert loan %s: %w", m.LoanID, err)
	}

	if err := insertLoanTransactionInTx(ctx, tx, txn); err != nil {
		return "", err
	}

	number, err := insertJournalInTx(ctx, tx, entry, lines)
	if err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return number, nil
}

// AppendLoanTransaction appends a log entry outside the repayment path
// (interest accrual, penalty, adjustment).
func (r *PgxLoanRepository) AppendLoanTransaction(ctx context.Context, txn domain.LoanTransaction) error {
	m := mapping.ToModelLoanTransaction(txn)
	query := `
		INSERT INTO loan_transactions (transaction_id, loan_id, type, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := r.Pool.Exec(ctx, query, m.TransactionID, m.LoanID, m.Type, m.Amount, m.CreatedAt, m.CreatedBy); err != nil {
		return fmt.Errorf("failed to append loan transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// RecordRepayment executes the full repayment sequence in one transaction.
// The loan row is locked FOR UPDATE before any state is read, so the position
// the planner sees cannot be invalidated by a concurrent repayment. For
// savings-funded repayments the customer's savings stream is serialized with
// the same advisory lock the savings repository takes.
func (r *PgxLoanRepository) RecordRepayment(ctx context.Context, loanID string, source domain.RepaymentSource, planner portsrepo.RepaymentPlanner) (*portsrepo.RepaymentResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	lockQuery := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1 FOR UPDATE;`
	m, err := scanLoan(tx.QueryRow(ctx, lockQuery, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock loan %s: %w", loanID, err)
	}
	loan := mapping.ToDomainLoanAccount(m)

	savingsBalance := decimal.Zero
	if source == domain.RepaymentFromSavings {
		if err := acquireCustomerSavingsLock(ctx, tx, loan.CustomerID); err != nil {
			return nil, err
		}
		savingsBalance, err = sumSavingsInTx(ctx, tx, loan.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	accrued, repaid, err := sumLoanTransactions(ctx, tx, loanID)
	if err != nil {
		return nil, err
	}
	position := accounting.ComputePosition(loan.Principal, accrued, repaid)

	plan, err := planner(loan, position, savingsBalance)
	if err != nil {
		return nil, err
	}

	if err := insertLoanTransactionInTx(ctx, tx, plan.LoanTxn); err != nil {
		return nil, err
	}
	if plan.SavingsTxn != nil {
		if err := insertSavingsTransactionInTx(ctx, tx, *plan.SavingsTxn); err != nil {
			return nil, err
		}
	}

	number, err := insertJournalInTx(ctx, tx, plan.Entry, plan.Lines)
	if err != nil {
		return nil, err
	}

	updateLoan := `
		UPDATE loans
		SET balance = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $1;
	`
	_, err = tx.Exec(ctx, updateLoan,
		loanID,
		plan.Allocation.NewBalance,
		string(plan.NewStatus),
		plan.LoanTxn.CreatedAt,
		plan.LoanTxn.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update loan %s after repayment: %w", loanID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.RepaymentResult{Plan: *plan, JournalNumber: number}, nil
}
