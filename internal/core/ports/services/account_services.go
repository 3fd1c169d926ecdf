package services

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations.
type AccountSvcFacade interface {
	// CreateAccount creates a new account in the chart.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves an account by its identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its unique chart code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// UpdateAccount updates an account's mutable details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)

	// DeleteAccount removes an account unless it has children or journal lines.
	DeleteAccount(ctx context.Context, accountID string) error

	// ResolveCodes maps chart codes to account IDs; missing codes are absent
	// from the result.
	ResolveCodes(ctx context.Context, codes []string) (map[string]string, error)
}
