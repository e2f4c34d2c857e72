package dto

import (
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN ACCOUNTANT SALES"`
}

// UpdateUserRequest defines the data allowed for updating a user.
type UpdateUserRequest struct {
	Name *string          `json:"name"`
	Role *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN ACCOUNTANT SALES"`
}

// UserResponse defines the data returned for a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToUserResponse converts a domain.User to UserResponse.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.LastUpdatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to responses.
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
