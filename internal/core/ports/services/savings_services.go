package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/dto"
)

// SavingsSvcFacade exposes the append-only savings ledger.
type SavingsSvcFacade interface {
	// Deposit records a deposit and its mirrored cash/savings-liability journal.
	Deposit(ctx context.Context, req dto.SavingsTransactionRequest, creatorUserID string) (*domain.SavingsTransaction, error)

	// Withdraw records a withdrawal after verifying the derived balance covers
	// it, plus the mirrored journal.
	Withdraw(ctx context.Context, req dto.SavingsTransactionRequest, creatorUserID string) (*domain.SavingsTransaction, error)

	// Balance derives the customer's savings balance from the log.
	Balance(ctx context.Context, customerID string) (decimal.Decimal, error)

	// ListTransactions retrieves a customer's savings log.
	ListTransactions(ctx context.Context, customerID string, dateRange *domain.DateRange) ([]domain.SavingsTransaction, error)

	// PayReceivableFromSavings settles a customer receivable out of their
	// savings: a balance-checked withdrawal mirrored by a journal debiting
	// savings-liability and crediting accounts-receivable.
	PayReceivableFromSavings(ctx context.Context, req dto.SavingsTransactionRequest, creatorUserID string) (*domain.SavingsTransaction, error)
}
