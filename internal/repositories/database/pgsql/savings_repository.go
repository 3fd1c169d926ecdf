package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	"github.com/kliniku/ledgercore/internal/models"
	"github.com/kliniku/ledgercore/internal/utils/mapping"
)

type PgxSavingsRepository struct {
	BaseRepository
}

// newPgxSavingsRepository creates a new repository for savings data.
func newPgxSavingsRepository(pool *pgxpool.Pool) portsrepo.SavingsRepositoryFacade {
	return &PgxSavingsRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxSavingsRepository implements portsrepo.SavingsRepositoryFacade
var _ portsrepo.SavingsRepositoryFacade = (*PgxSavingsRepository)(nil)

// acquireCustomerSavingsLock serializes balance-sensitive writes per customer
// for the lifetime of the transaction. Withdrawals and savings-funded loan
// repayments both take this lock before deriving the balance, so two
// concurrent debits cannot both pass the same balance check.
func acquireCustomerSavingsLock(ctx context.Context, tx pgx.Tx, customerID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, customerID); err != nil {
		return fmt.Errorf("failed to acquire savings lock for customer %s: %w", customerID, err)
	}
	return nil
}

// sumSavingsInTx derives the balance as sum(deposits) - sum(withdrawals)
// using the given querier.
func sumSavingsInTx(ctx context.Context, q querier, customerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'DEPOSIT' THEN amount ELSE -amount END), 0)
		FROM savings_transactions
		WHERE customer_id = $1;
	`
	var balance decimal.Decimal
	if err := q.QueryRow(ctx, query, customerID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum savings for customer %s: %w", customerID, err)
	}
	return balance, nil
}

func insertSavingsTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.SavingsTransaction) error {
	m := mapping.ToModelSavingsTransaction(txn)
	query := `
		INSERT INTO savings_transactions (transaction_id, customer_id, type, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, query, m.TransactionID, m.CustomerID, m.Type, m.Amount, m.CreatedAt, m.CreatedBy); err != nil {
		return fmt.Errorf("failed to insert savings transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SumSavings derives a customer's balance as sum(deposits) - sum(withdrawals).
func (r *PgxSavingsRepository) SumSavings(ctx context.Context, customerID string) (decimal.Decimal, error) {
	return sumSavingsInTx(ctx, r.Pool, customerID)
}

// ListSavingsTransactions retrieves a customer's savings log, newest first,
// optionally filtered by date range.
func (r *PgxSavingsRepository) ListSavingsTransactions(ctx context.Context, customerID string, dateRange *domain.DateRange) ([]domain.SavingsTransaction, error) {
	query := `
		SELECT transaction_id, customer_id, type, amount, created_at, created_by
		FROM savings_transactions
		WHERE customer_id = $1
	`
	args := []any{customerID}
	argPos := 2

	if dateRange != nil {
		if dateRange.From != nil {
			query += fmt.Sprintf(" AND created_at >= $%d", argPos)
			args = append(args, *dateRange.From)
			argPos++
		}
		if dateRange.To != nil {
			query += fmt.Sprintf(" AND created_at <= $%d", argPos)
			args = append(args, *dateRange.To)
			argPos++
		}
	}
	query += " ORDER BY created_at DESC, transaction_id DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings transactions for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	txns := []domain.SavingsTransaction{}
	for rows.Next() {
		var m models.SavingsTransaction
		if err := rows.Scan(&m.TransactionID, &m.CustomerID, &m.Type, &m.Amount, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan savings transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainSavingsTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings transaction rows: %w", err)
	}

	return txns, nil
}

// RecordSavings persists a savings transaction and its mirrored journal in one
// transaction. Withdrawals re-derive the balance under the customer's advisory
// lock; an overdraw rolls everything back with ErrInsufficientBalance.
func (r *PgxSavingsRepository) RecordSavings(ctx context.Context, txn domain.SavingsTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	if err := acquireCustomerSavingsLock(ctx, tx, txn.CustomerID); err != nil {
		return "", err
	}

	if txn.Type == domain.SavingsWithdraw {
		balance, err := sumSavingsInTx(ctx, tx, txn.CustomerID)
		if err != nil {
			return "", err
		}
		if balance.LessThan(txn.Amount) {
			return "", fmt.Errorf("%w: savings balance %s is less than withdrawal %s",
				apperrors.ErrInsufficientBalance, balance.StringFixed(2), txn.Amount.StringFixed(2))
		}
	}

	if err := insertSavingsTransactionInTx(ctx, tx, txn); err != nil {
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
