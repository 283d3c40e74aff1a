package company

import "context"

// Repository defines the interface for company settings persistence.
// The settings table holds a single row per tenant database.
type Repository interface {
	// Get retrieves the settings row. Returns apperror.NewNotFound when
	// the tenant has not configured the company yet.
	Get(ctx context.Context) (*Settings, error)

	// Upsert creates the settings row or replaces the existing one.
	Upsert(ctx context.Context, settings *Settings) error
}
