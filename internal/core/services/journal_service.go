package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
)

var (
	ErrJournalUnbalanced = errors.New("journal lines do not balance")
	ErrMixedLine         = errors.New("journal line must have exactly one of debit or credit")
	ErrNegativeAmount    = errors.New("journal line amounts must not be negative")
)

// journalService is the posting engine: it validates, numbers, and atomically
// persists balanced journal entries, and owns the fixed posting recipes.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	roles       domain.RoleMapping
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, roles domain.RoleMapping) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		roles:       roles,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal validates and persists a balanced journal entry.
//
// Lines whose debit and credit are both effectively zero are dropped first.
// If fewer than two lines survive, no entry is created and (nil, nil) is
// returned; callers treat the nil entry as a no-op. This mirrors postings like
// a zero-tax zero-discount sale where the template collapses to nothing.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines := make([]domain.JournalLine, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Debit.IsNegative() || lineReq.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: %w", apperrors.ErrValidation, i, ErrNegativeAmount)
		}
		if lineReq.Debit.IsPositive() && lineReq.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: line %d: %w", apperrors.ErrValidation, i, ErrMixedLine)
		}
		lines = append(lines, domain.JournalLine{
			AccountCode: lineReq.AccountCode,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Description: lineReq.Description,
		})
	}

	lines = accounting.SanitizeLines(lines)
	if len(lines) < 2 {
		logger.Debug("Journal posting sanitized below two lines, nothing written",
			slog.Int("requested_lines", len(req.Lines)),
			slog.Int("surviving_lines", len(lines)))
		return nil, nil
	}

	debits, credits := accounting.SumLines(lines)
	if !accounting.IsBalanced(debits, credits) {
		return nil, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrJournalUnbalanced, debits.String(), credits.String())
	}

	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		codes = append(codes, line.AccountCode)
	}
	resolved, err := s.accountSvc.ResolveCodes(ctx, uniqueStrings(codes))
	if err != nil {
		logger.Error("Failed to resolve account codes for journal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve account codes: %w", err)
	}

	var missing []string
	for _, code := range uniqueStrings(codes) {
		if _, ok := resolved[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		// A missing code is a chart setup defect, not a caller input error.
		return nil, &apperrors.LedgerConfigError{MissingCodes: missing}
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	entry := domain.JournalEntry{
		JournalID: journalID,
		EntryDate: req.EntryDate,
		Memo:      req.Memo,
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
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].JournalID = journalID
		lines[i].AccountID = resolved[lines[i].AccountCode]
		lines[i].Debit = accounting.RoundCents(lines[i].Debit)
		lines[i].Credit = accounting.RoundCents(lines[i].Credit)
		lines[i].AuditFields = entry.AuditFields
	}

	number, err := s.journalRepo.SaveJournal(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}
	entry.Number = number
	entry.Lines = lines

	logger.Info("Journal posted",
		slog.String("journal_id", journalID),
		slog.String("number", number),
		slog.Int("lines", len(lines)))
	return &entry, nil
}

// PostSaleJournal posts the fixed sale template against the role mapping:
//
//	debit  funding account      subtotal - discount + tax
//	debit  sales-discount       discount
//	credit sales-revenue        subtotal
//	credit tax-payable          tax
//
// Zero legs are sanitized away by CreateJournal, so a sale whose template
// collapses to a single non-zero line writes nothing.
func (s *journalService) PostSaleJournal(ctx context.Context, req dto.SaleJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.Subtotal.IsNegative() || req.Discount.IsNegative() || req.Tax.IsNegative() {
		return nil, fmt.Errorf("%w: sale amounts must not be negative", apperrors.ErrValidation)
	}

	fundingRole, err := saleFundingRole(req.Method)
	if err != nil {
		return nil, err
	}
	paid := req.Subtotal.Sub(req.Discount).Add(req.Tax)
	if paid.IsNegative() {
		return nil, fmt.Errorf("%w: discount exceeds subtotal plus tax", apperrors.ErrValidation)
	}

	journalReq := dto.CreateJournalRequest{
		EntryDate: req.EntryDate,
		Memo:      req.Memo,
		Reference: req.Reference,
		Lines: []dto.JournalLineRequest{
			{AccountCode: s.roles[fundingRole], Debit: paid, Description: "Sale payment"},
			{AccountCode: s.roles[domain.RoleSalesDiscount], Debit: req.Discount, Description: "Sale discount"},
			{AccountCode: s.roles[domain.RoleSalesRevenue], Credit: req.Subtotal, Description: "Sale revenue"},
			{AccountCode: s.roles[domain.RoleTaxPayable], Credit: req.Tax, Description: "Sale tax"},
		},
	}
	return s.CreateJournal(ctx, journalReq, creatorUserID)
}

func saleFundingRole(method dto.SalePaymentMethod) (domain.LedgerRole, error) {
	switch method {
	case dto.SalePaidCash:
		return domain.RoleCash, nil
	case dto.SalePaidQRIS:
		return domain.RoleQRISClearing, nil
	case dto.SalePaidDebitCard:
		return domain.RoleDebitClearing, nil
	case dto.SalePaidReceivable:
		return domain.RoleAccountsReceivable, nil
	default:
		return "", fmt.Errorf("%w: unknown sale payment method %q", apperrors.ErrValidation, method)
	}
}

// GetJournalByID retrieves an entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournals retrieves entries filtered by status and entry-date range.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	var dateRange *domain.DateRange
	if params.From != nil || params.To != nil {
		dateRange = &domain.DateRange{From: params.From, To: params.To}
	}

	entries, err := s.journalRepo.ListJournals(ctx, params.Status, dateRange, limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}
	return entries, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
