package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// SavingsReader defines read operations for savings data
type SavingsReader interface {
	// SumSavings derives a customer's balance as sum(deposits) - sum(withdrawals).
	SumSavings(ctx context.Context, customerID string) (decimal.Decimal, error)

	// ListSavingsTransactions retrieves a customer's savings log, newest first,
	// optionally filtered by date range.
	ListSavingsTransactions(ctx context.Context, customerID string, dateRange *domain.DateRange) ([]domain.SavingsTransaction, error)
}

// SavingsWriter defines write operations for savings data
type SavingsWriter interface {
	// RecordSavings persists a savings transaction and its mirrored journal in
	// one transaction. Withdrawals take a per-customer advisory lock and
	// re-derive the balance inside the transaction; an overdraw fails with
	// apperrors.ErrInsufficientBalance and nothing is written. Returns the
	// assigned journal number.
	RecordSavings(ctx context.Context, txn domain.SavingsTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (string, error)
}

// SavingsRepositoryFacade combines all savings-related repository interfaces
type SavingsRepositoryFacade interface {
	SavingsReader
	SavingsWriter
}
