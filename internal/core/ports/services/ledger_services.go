package services

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// LedgerSvcFacade exposes the general ledger projector.
type LedgerSvcFacade interface {
	// GetGeneralLedger returns every line touching the account within the
	// display range, annotated with a running balance computed over the
	// account's full history regardless of the range.
	GetGeneralLedger(ctx context.Context, accountID string, dateRange *domain.DateRange) ([]domain.GeneralLedgerLine, error)
}
