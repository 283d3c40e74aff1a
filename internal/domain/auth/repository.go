package auth

import (
	"context"

	"krilo/internal/core/id"
)

// Repository defines user persistence against the meta database.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin stamps a successful login.
	UpdateLastLogin(ctx context.Context, userID id.ID) error

	// Delete removes a user (administrative cleanup).
	Delete(ctx context.Context, userID id.ID) error
}
