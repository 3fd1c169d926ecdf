package repositories

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// AccountReader defines read operations for chart-of-account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique chart code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ResolveCodes maps chart codes to account IDs. Codes with no matching
	// account are simply absent from the result; the caller decides how to
	// treat them.
	ResolveCodes(ctx context.Context, codes []string) (map[string]string, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate code surfaces as
	// apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. It fails with apperrors.ErrHasChildren
	// if child accounts exist and apperrors.ErrInUse if any journal line
	// references the account; both guards run inside the delete transaction.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
