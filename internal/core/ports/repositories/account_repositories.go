package repositories

import (
	"context"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its human-assigned code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the given accounts keyed by ID.
	// Missing IDs are simply absent from the result.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by account code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// HasPostedLines reports whether any journal line references the account.
	HasPostedLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates the mutable fields (name, postable flag) of an account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row. Callers must check references first.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
