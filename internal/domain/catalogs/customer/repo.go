package customer

import (
	"context"

	"krilo/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByGSTIN retrieves a customer by tax registration number.
	FindByGSTIN(ctx context.Context, gstin string) (*Customer, error)
}
