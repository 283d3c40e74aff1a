package inventory

import (
	"context"
	"fmt"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/pkg/logger"
)

// Service provides stock adjustment operations.
// Transactions are managed by the caller (the invoice posting engine).
type Service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ApplyAdjustments applies all deltas in order. Each delta is a single
// conditional UPDATE; the first failed guard aborts with InsufficientStock
// and the surrounding transaction rolls everything back.
func (s *Service) ApplyAdjustments(ctx context.Context, adjustments []Adjustment) error {
	for i, adj := range adjustments {
		if id.IsNil(adj.ProductID) {
			return apperror.NewValidation(fmt.Sprintf("adjustment %d: product_id is required", i))
		}
		if adj.Delta == 0 {
			return apperror.NewValidation(fmt.Sprintf("adjustment %d: delta must be non-zero", i))
		}

		newStock, err := s.repo.AdjustStock(ctx, adj)
		if err != nil {
			return err
		}

		logger.Debug(ctx, "adjusted stock",
			"product_id", adj.ProductID,
			"delta", adj.Delta,
			"stock", newStock,
		)
	}
	return nil
}
