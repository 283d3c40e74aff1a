package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when the tenant does not exist in the meta-database.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantNotActive is returned when the tenant exists but is not active.
	ErrTenantNotActive = errors.New("tenant is not active")

	// ErrMaxPoolLimit is returned when the tenant manager reached its pool limit.
	ErrMaxPoolLimit = errors.New("max tenant pool limit reached")
)
