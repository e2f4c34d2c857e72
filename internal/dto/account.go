package dto

import (
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a chart-of-accounts entry.
type CreateAccountRequest struct {
	AccountCode string             `json:"account_code" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsPostable  *bool              `json:"is_postable"` // defaults to true when omitted
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name       *string `json:"name"`
	IsPostable *bool   `json:"is_postable"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID          string             `json:"id"`
	AccountCode string             `json:"account_code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"type"`
	IsPostable  bool               `json:"is_postable"`
	CreatedAt   time.Time          `json:"created_at"`
	CreatedBy   string             `json:"created_by"`
	UpdatedAt   time.Time          `json:"updated_at"`
	UpdatedBy   string             `json:"updated_by"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          a.AccountID,
		AccountCode: a.AccountCode,
		Name:        a.Name,
		AccountType: a.AccountType,
		IsPostable:  a.IsPostable,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
		UpdatedAt:   a.LastUpdatedAt,
		UpdatedBy:   a.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to responses.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
