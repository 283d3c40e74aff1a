// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"krilo/internal/core/apperror"
	"krilo/internal/domain/registers/inventory"
	"krilo/internal/infrastructure/storage/postgres"
)

// InventoryRepo implements inventory.Repository against the products table.
type InventoryRepo struct{}

// NewInventoryRepo creates a new inventory repository.
func NewInventoryRepo() *InventoryRepo {
	return &InventoryRepo{}
}

// AdjustStock applies the delta as one conditional UPDATE. The guard
// `stock + delta >= 0` makes the storage layer serialize concurrent
// deltas; a CHECK constraint on the column is the second defense.
func (r *InventoryRepo) AdjustStock(ctx context.Context, adj inventory.Adjustment) (int64, error) {
	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)

	var newStock int64
	err := querier.QueryRow(ctx, `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock
	`, adj.ProductID, adj.Delta).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}

	// Zero rows: either the product is gone or the guard rejected the
	// delta. Re-read inside the same transaction for a precise error.
	var name string
	var available int64
	readErr := querier.QueryRow(ctx, `
		SELECT name, stock FROM products WHERE id = $1
	`, adj.ProductID).Scan(&name, &available)
	if errors.Is(readErr, pgx.ErrNoRows) {
		return 0, apperror.NewNotFound("product", adj.ProductID.String())
	}
	if readErr != nil {
		return 0, fmt.Errorf("read stock after rejected adjustment: %w", readErr)
	}

	return 0, apperror.NewInsufficientStock(name, available, -adj.Delta)
}
