package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
)

var (
	ErrAccountCodeTaken   = errors.New("account code already exists")
	ErrAccountTypeUnknown = errors.New("unknown account type")
	ErrAccountReferenced  = errors.New("account is referenced by posted journal lines")
)

// accountService implements the ledger account registry.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new chart-of-accounts entry.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrAccountTypeUnknown, req.AccountType)
	}

	postable := true
	if req.IsPostable != nil {
		postable = *req.IsPostable
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: req.AccountCode,
		Name:        req.Name,
		AccountType: req.AccountType,
		IsPostable:  postable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrAccountCodeTaken, req.AccountCode)
		}
		return nil, err
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves all accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// UpdateAccount changes name and/or the postable flag. Once a posted line
// references the account, only the name may change and the flag may not be
// cleared.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.IsPostable != nil && !*req.IsPostable && account.IsPostable {
		referenced, err := s.accountRepo.HasPostedLines(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAccountReferenced)
		}
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsPostable != nil {
		account.IsPostable = *req.IsPostable
	}
	account.TouchAudit(userID, time.Now().UTC())

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account that no journal line references.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	referenced, err := s.accountRepo.HasPostedLines(ctx, accountID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAccountReferenced)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return err
	}
	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
