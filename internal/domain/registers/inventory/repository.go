// Package inventory provides atomic stock level adjustments.
package inventory

import (
	"context"

	"krilo/internal/core/id"
)

// Adjustment is a single stock delta for a product.
// Delta is negative for sales and positive for purchases.
type Adjustment struct {
	ProductID id.ID
	Delta     int64
}

// Repository defines stock mutation operations.
type Repository interface {
	// AdjustStock applies the delta with a non-negative guard in a single
	// conditional UPDATE. Returns the resulting stock level, or
	// apperror.NewInsufficientStock when the guard rejects the delta.
	// Must be called within a transaction.
	AdjustStock(ctx context.Context, adj Adjustment) (int64, error)
}
