package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/middleware"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
)

// ledgerService projects the general ledger for a single account.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{accountRepo: accountRepo, journalRepo: journalRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetGeneralLedger returns the account's lines within the display range,
// each carrying the running balance.
//
// The running balance is the prefix sum of (debit - credit) over the account's
// FULL history ordered by (entryDate, sequence, lineID). The date range only
// filters which rows are returned; it never narrows the balance computation.
// Filtering before summing would make every balance in a sub-range wrong.
func (s *ledgerService) GetGeneralLedger(ctx context.Context, accountID string, dateRange *domain.DateRange) ([]domain.GeneralLedgerLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	history, err := s.journalRepo.FindAccountHistory(ctx, accountID)
	if err != nil {
		logger.Error("Failed to load account history", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load ledger history for account %s: %w", accountID, err)
	}

	running := decimal.Zero
	result := make([]domain.GeneralLedgerLine, 0, len(history))
	for _, line := range history {
		running = accounting.RoundCents(running.Add(line.Debit).Sub(line.Credit))
		if !dateRange.Contains(line.EntryDate) {
			continue
		}
		line.RunningBalance = running
		result = append(result, line)
	}

	logger.Debug("General ledger projected",
		slog.String("account_id", accountID),
		slog.Int("history_lines", len(history)),
		slog.Int("returned_lines", len(result)))
	return result, nil
}
