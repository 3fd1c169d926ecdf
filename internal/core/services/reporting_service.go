package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/middleware"
	"github.com/kliniku/ledgercore/internal/utils/accounting"
)

// reportingService assembles derived financial snapshots.
type reportingService struct {
	savingsRepo portsrepo.SavingsRepositoryFacade
	loanRepo    portsrepo.LoanRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(savingsRepo portsrepo.SavingsRepositoryFacade, loanRepo portsrepo.LoanRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{savingsRepo: savingsRepo, loanRepo: loanRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetCustomerSnapshot computes the customer's derived savings balance plus the
// position of every loan they hold. Everything here is recomputed from the
// transaction logs; nothing is read from cached counters.
func (s *reportingService) GetCustomerSnapshot(ctx context.Context, customerID string) (*domain.CustomerSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance, err := s.savingsRepo.SumSavings(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive savings balance for %s: %w", customerID, err)
	}

	loans, err := s.loanRepo.ListLoansByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans for %s: %w", customerID, err)
	}

	snapshot := &domain.CustomerSnapshot{
		CustomerID:     customerID,
		SavingsBalance: balance,
		Loans:          make([]domain.LoanSnapshot, 0, len(loans)),
	}
	for _, loan := range loans {
		accrued, repaid, err := s.loanRepo.SumLoanTransactions(ctx, loan.LoanID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum loan transactions for %s: %w", loan.LoanID, err)
		}
		snapshot.Loans = append(snapshot.Loans, domain.LoanSnapshot{
			Loan:     loan,
			Position: accounting.ComputePosition(loan.Principal, accrued, repaid),
		})
	}

	logger.Debug("Customer snapshot computed",
		slog.String("customer_id", customerID),
		slog.Int("loans", len(loans)))
	return snapshot, nil
}
