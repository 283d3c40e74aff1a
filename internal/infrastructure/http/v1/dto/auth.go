package dto

import (
	"time"

	"krilo/internal/domain/auth"
)

// --- Request DTOs ---

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	BusinessName string `json:"businessName"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --- Response DTOs ---

// TokenResponse carries the issued access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FromTokenPair creates response DTO from an issued token pair.
func FromTokenPair(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		Token:     pair.AccessToken,
		ExpiresAt: pair.ExpiresAt,
	}
}

// UserResponse is the authenticated account view.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	TenantID    string     `json:"tenantId"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser creates response DTO from a user.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		TenantID:    u.TenantID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
