package repositories

import (
	"context"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its internal identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its external-facing code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by account code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// IsAccountReferenced reports whether any journal line references the account.
	// Referenced accounts have immutable code and type.
	IsAccountReferenced(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account. Fails with ErrDuplicate on a code clash.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates the mutable fields of an account.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
