package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	savingsRepo := newPgxSavingsRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		JournalRepo: journalRepo,
		LoanRepo:    loanRepo,
		SavingsRepo: savingsRepo,
		BudgetRepo:  budgetRepo,
	}
}
