package dto

import (
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.CustomerID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		CreatedBy: c.CreatedBy,
		UpdatedAt: c.LastUpdatedAt,
		UpdatedBy: c.LastUpdatedBy,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to responses.
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}
