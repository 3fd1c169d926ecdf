package services

// ServiceContainer holds all the service facades the handlers depend on.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Ledger    LedgerSvcFacade
	Loan      LoanSvcFacade
	Savings   SavingsSvcFacade
	Budget    BudgetSvcFacade
	Reporting ReportingSvcFacade
}
