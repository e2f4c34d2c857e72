package services

import (
	"context"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
)

// AccountSvcFacade defines the business operations of the ledger account registry.
type AccountSvcFacade interface {
	// CreateAccount creates a new chart-of-accounts entry. Fails with
	// apperrors.ErrValidation when the code is taken or the type is unknown.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdateAccount changes name and/or the postable flag. Marking an account
	// non-postable fails with apperrors.ErrConflict while posted lines
	// reference it.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account that no journal line references;
	// otherwise fails with apperrors.ErrConflict.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}
