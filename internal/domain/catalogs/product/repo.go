package product

import (
	"context"

	"krilo/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByName retrieves a product by exact name.
	FindByName(ctx context.Context, name string) (*Product, error)

	// ListCategories returns the distinct categories in use.
	ListCategories(ctx context.Context) ([]string, error)

	// FindLowStock retrieves products with stock at or below threshold.
	FindLowStock(ctx context.Context, threshold int64, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
