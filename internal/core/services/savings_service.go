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

// savingsService manages the append-only savings ledger. Balances are always
// derived from the log; every accepted movement mirrors a balanced journal.
type savingsService struct {
	savingsRepo portsrepo.SavingsRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	roles       domain.RoleMapping
}

// NewSavingsService creates a new SavingsService.
func NewSavingsService(savingsRepo portsrepo.SavingsRepositoryFacade, accountSvc portssvc.AccountSvcFacade, roles domain.RoleMapping) portssvc.SavingsSvcFacade {
	return &savingsService{
		savingsRepo: savingsRepo,
		accountSvc:  accountSvc,
		roles:       roles,
	}
}

var _ portssvc.SavingsSvcFacade = (*savingsService)(nil)

// Deposit records a deposit mirrored by debit cash / credit savings-liability.
func (s *savingsService) Deposit(ctx context.Context, req dto.SavingsTransactionRequest, creatorUserID string) (*domain.SavingsTransaction, error) {
	return s.record(ctx, req, domain.SavingsDeposit, creatorUserID, []roleLeg{
		{Role: domain.RoleCash, Debit: req.Amount, Description: "Savings deposit"},
		{Role: domain.RoleSavingsLiability, Credit: req.Amount, Description: "Savings deposit"},
	})
}

// Withdraw records a withdrawal mirrored by debit savings-liability / credit
// cash. The repository re-derives the balance under the customer's advisory
// lock; an overdraw aborts with nothing written.
func (s *savingsService) Withdraw(ctx context.Context, req dto.SavingsTransactionRequest, creatorUserID string) (*domain.SavingsTransaction, error) {
	return s.record(ctx, req, domain.SavingsWithdraw, creatorUserID, []roleLeg{
		{Role: domain.RoleSavingsLiability, Debit: req.Amount, Description: "Savings withdrawal"},
		{Role: domain.RoleCash, Credit: req.Amount, Description: "Savings withdrawal"},
	})
}

// PayReceivableFromSavings settles a receivable out of savings: a
// balance-checked withdrawal mirrored by debit savings-liability / credit
// accounts-receivable.
func (s *savingsService) PayReceivableFromSavings(ctx context.Context, req dto.SavingsTransactionRequest, creatorUserID string) (*domain.SavingsTransaction, error) {
	return s.record(ctx, req, domain.SavingsWithdraw, creatorUserID, []roleLeg{
		{Role: domain.RoleSavingsLiability, Debit: req.Amount, Description: "Receivable payoff from savings"},
		{Role: domain.RoleAccountsReceivable, Credit: req.Amount, Description: "Receivable payoff from savings"},
	})
}

func (s *savingsService) record(ctx context.Context, req dto.SavingsTransactionRequest, txnType domain.SavingsTransactionType, creatorUserID string, legs []roleLeg) (*domain.SavingsTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount := accounting.RoundCents(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.SavingsTransaction{
		TransactionID: uuid.NewString(),
		CustomerID:    req.CustomerID,
		Type:          txnType,
		Amount:        amount,
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
	}
	entry := domain.JournalEntry{
		JournalID: uuid.NewString(),
		EntryDate: now,
		Memo:      fmt.Sprintf("Savings %s %s", txnType, req.CustomerID),
		Reference: req.Reference,
		Status:    domain.Posted,
		PostedAt:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	lines, err := resolveRecipeLines(ctx, s.accountSvc, s.roles, entry, legs)
	if err != nil {
		return nil, err
	}

	number, err := s.savingsRepo.RecordSavings(ctx, txn, entry, lines)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			return nil, err
		}
		logger.Error("Failed to record savings transaction",
			slog.String("error", err.Error()),
			slog.String("customer_id", req.CustomerID),
			slog.String("type", string(txnType)))
		return nil, fmt.Errorf("failed to record savings transaction: %w", err)
	}

	logger.Info("Savings transaction recorded",
		slog.String("customer_id", req.CustomerID),
		slog.String("type", string(txnType)),
		slog.String("amount", amount.String()),
		slog.String("journal_number", number))
	return &txn, nil
}

// Balance derives the customer's savings balance from the log.
func (s *savingsService) Balance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	balance, err := s.savingsRepo.SumSavings(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive savings balance for %s: %w", customerID, err)
	}
	return balance, nil
}

// ListTransactions retrieves a customer's savings log.
func (s *savingsService) ListTransactions(ctx context.Context, customerID string, dateRange *domain.DateRange) ([]domain.SavingsTransaction, error) {
	return s.savingsRepo.ListSavingsTransactions(ctx, customerID, dateRange)
}
