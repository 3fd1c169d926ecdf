package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testRoles maps every ledger role to the codes the seeded chart uses.
func testRoles() domain.RoleMapping {
	return domain.RoleMapping{
		domain.RoleCash:               "1000",
		domain.RoleQRISClearing:       "1010",
		domain.RoleDebitClearing:      "1020",
		domain.RoleAccountsReceivable: "1100",
		domain.RoleLoanReceivable:     "1200",
		domain.RoleSavingsLiability:   "2100",
		domain.RoleTaxPayable:         "2200",
		domain.RoleSalesRevenue:       "4000",
		domain.RoleSalesDiscount:      "4010",
		domain.RoleInterestIncome:     "4100",
	}
}

// --- MockAccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, updaterUserID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountService) ResolveCodes(ctx context.Context, codes []string) (map[string]string, error) {
	args := m.Called(ctx, codes)
	var resolved map[string]string
	if args.Get(0) != nil {
		resolved = args.Get(0).(map[string]string)
	}
	return resolved, args.Error(1)
}

// --- MockAccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	var accounts map[string]domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ResolveCodes(ctx context.Context, codes []string) (map[string]string, error) {
	args := m.Called(ctx, codes)
	var resolved map[string]string
	if args.Get(0) != nil {
		resolved = args.Get(0).(map[string]string)
	}
	return resolved, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- MockJournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	var entry *domain.JournalEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.JournalEntry)
	}
	return entry, args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	var lines []domain.JournalLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.JournalLine)
	}
	return lines, args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, status *domain.JournalStatus, dateRange *domain.DateRange, limit int, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, status, dateRange, limit, offset)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	return entries, args.Error(1)
}

func (m *MockJournalRepository) FindAccountHistory(ctx context.Context, accountID string) ([]domain.GeneralLedgerLine, error) {
	args := m.Called(ctx, accountID)
	var lines []domain.GeneralLedgerLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.GeneralLedgerLine)
	}
	return lines, args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	args := m.Called(ctx, entry, lines)
	return args.String(0), args.Error(1)
}

// --- MockLoanRepository ---

// MockLoanRepository stubs the loan repository. RecordRepayment invokes the
// caller's planner against the fixture loan state, the way the real
// repository does under its row lock, so tests exercise the actual
// allocation logic.
type MockLoanRepository struct {
	mock.Mock

	loan           domain.LoanAccount
	position       domain.LoanPosition
	savingsBalance decimal.Decimal
}

var _ portsrepo.LoanRepositoryFacade = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.LoanAccount, error) {
	args := m.Called(ctx, loanID)
	var loan *domain.LoanAccount
	if args.Get(0) != nil {
		loan = args.Get(0).(*domain.LoanAccount)
	}
	return loan, args.Error(1)
}

func (m *MockLoanRepository) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.LoanAccount, error) {
	args := m.Called(ctx, customerID)
	var loans []domain.LoanAccount
	if args.Get(0) != nil {
		loans = args.Get(0).([]domain.LoanAccount)
	}
	return loans, args.Error(1)
}

func (m *MockLoanRepository) FindLoanTransactions(ctx context.Context, loanID string) ([]domain.LoanTransaction, error) {
	args := m.Called(ctx, loanID)
	var txns []domain.LoanTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.LoanTransaction)
	}
	return txns, args.Error(1)
}

func (m *MockLoanRepository) SumLoanTransactions(ctx context.Context, loanID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockLoanRepository) CreateLoanWithDisbursement(ctx context.Context, loan domain.LoanAccount, txn domain.LoanTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	args := m.Called(ctx, loan, txn, entry, lines)
	return args.String(0), args.Error(1)
}

func (m *MockLoanRepository) AppendLoanTransaction(ctx context.Context, txn domain.LoanTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLoanRepository) RecordRepayment(ctx context.Context, loanID string, source domain.RepaymentSource, planner portsrepo.RepaymentPlanner) (*portsrepo.RepaymentResult, error) {
	args := m.Called(ctx, loanID, source)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	plan, err := planner(m.loan, m.position, m.savingsBalance)
	if err != nil {
		return nil, err
	}
	return &portsrepo.RepaymentResult{Plan: *plan, JournalNumber: args.String(0)}, nil
}

// --- MockSavingsRepository ---

type MockSavingsRepository struct {
	mock.Mock
}

var _ portsrepo.SavingsRepositoryFacade = (*MockSavingsRepository)(nil)

func (m *MockSavingsRepository) SumSavings(ctx context.Context, customerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSavingsRepository) ListSavingsTransactions(ctx context.Context, customerID string, dateRange *domain.DateRange) ([]domain.SavingsTransaction, error) {
	args := m.Called(ctx, customerID, dateRange)
	var txns []domain.SavingsTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.SavingsTransaction)
	}
	return txns, args.Error(1)
}

func (m *MockSavingsRepository) RecordSavings(ctx context.Context, txn domain.SavingsTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	args := m.Called(ctx, txn, entry, lines)
	return args.String(0), args.Error(1)
}

// --- MockBudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindPlan(ctx context.Context, year int, scenario string) (*domain.BudgetPlan, error) {
	args := m.Called(ctx, year, scenario)
	var plan *domain.BudgetPlan
	if args.Get(0) != nil {
		plan = args.Get(0).(*domain.BudgetPlan)
	}
	return plan, args.Error(1)
}

func (m *MockBudgetRepository) ListPlans(ctx context.Context, year int) ([]domain.BudgetPlan, error) {
	args := m.Called(ctx, year)
	var plans []domain.BudgetPlan
	if args.Get(0) != nil {
		plans = args.Get(0).([]domain.BudgetPlan)
	}
	return plans, args.Error(1)
}

func (m *MockBudgetRepository) SavePlan(ctx context.Context, plan domain.BudgetPlan, items []domain.BudgetItem) error {
	args := m.Called(ctx, plan, items)
	return args.Error(0)
}
