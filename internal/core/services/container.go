package services

import (
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
)

// NewContainer creates the service container with properly wired dependencies.
// The role mapping must already be validated; services trust it.
func NewContainer(repos *portsrepo.RepositoryProvider, roles domain.RoleMapping) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, roles)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.JournalRepo)
	container.Loan = NewLoanService(repos.LoanRepo, container.Account, roles)
	container.Savings = NewSavingsService(repos.SavingsRepo, container.Account, roles)
	container.Budget = NewBudgetService(repos.BudgetRepo)
	container.Reporting = NewReportingService(repos.SavingsRepo, repos.LoanRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.AccountSvcFacade   = (*accountService)(nil)
	_ portssvc.JournalSvcFacade   = (*journalService)(nil)
	_ portssvc.LedgerSvcFacade    = (*ledgerService)(nil)
	_ portssvc.LoanSvcFacade      = (*loanService)(nil)
	_ portssvc.SavingsSvcFacade   = (*savingsService)(nil)
	_ portssvc.BudgetSvcFacade    = (*budgetService)(nil)
	_ portssvc.ReportingSvcFacade = (*reportingService)(nil)
)
