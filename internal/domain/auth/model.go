// Package auth provides registration, login and token validation.
// Users live in the meta database; each user owns exactly one tenant
// partition, provisioned at registration time.
package auth

import (
	"context"
	"strings"
	"time"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
)

// User represents an account in the meta database.
type User struct {
	ID           id.ID  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`

	// TenantID is the partition this account is bound to
	TenantID string `db:"tenant_id" json:"tenantId"`

	IsActive    bool       `db:"is_active" json:"isActive"`
	LastLoginAt *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a new active user.
func NewUser(email, passwordHash, tenantID string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		TenantID:     tenantID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks user invariants.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("email is malformed").WithDetail("field", "email")
	}
	if u.TenantID == "" {
		return apperror.NewValidation("tenant binding is required").WithDetail("field", "tenantId")
	}
	return nil
}

// CanLogin checks account status.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}
