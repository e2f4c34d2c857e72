package dto

import "time"

// LoginRequest carries email/password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token and the authenticated user.
// The refresh token travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// MeResponse wraps the authenticated user for GET /auth/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}
