package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
)

// roleLeg is one debit or credit leg of a fixed posting recipe, referencing a
// logical ledger role instead of a concrete account.
type roleLeg struct {
	Role        domain.LedgerRole
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// resolveRecipeLines turns role legs into fully resolved journal lines for the
// given entry. Zero legs are sanitized away; missing role codes surface as a
// LedgerConfigError. Used by the loan and savings services, which persist
// their journals inside their own repository transactions.
func resolveRecipeLines(ctx context.Context, accountSvc portssvc.AccountSvcFacade, roles domain.RoleMapping, entry domain.JournalEntry, legs []roleLeg) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, len(legs))
	for _, leg := range legs {
		lines = append(lines, domain.JournalLine{
			AccountCode: roles[leg.Role],
			Debit:       accounting.RoundCents(leg.Debit),
			Credit:      accounting.RoundCents(leg.Credit),
			Description: leg.Description,
		})
	}
	lines = accounting.SanitizeLines(lines)

	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		codes = append(codes, line.AccountCode)
	}
	resolved, err := accountSvc.ResolveCodes(ctx, uniqueStrings(codes))
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, code := range uniqueStrings(codes) {
		if _, ok := resolved[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, &apperrors.LedgerConfigError{MissingCodes: missing}
	}

	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].JournalID = entry.JournalID
		lines[i].AccountID = resolved[lines[i].AccountCode]
		lines[i].AuditFields = entry.AuditFields
	}
	return lines, nil
}
