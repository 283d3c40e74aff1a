package product

import (
	"context"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a new Product service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  nil, // Will be obtained from context
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

// checkNameUnique rejects a second product with the same name.
func (s *Service) checkNameUnique(ctx context.Context, item *Product) error {
	existing, err := s.repo.FindByName(ctx, item.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != item.ID {
		return apperror.NewConflict("product with this name already exists").
			WithDetail("name", item.Name)
	}
	return nil
}

// --- Entity-specific methods ---

// FindByName retrieves a product by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*Product, error) {
	return s.repo.FindByName(ctx, name)
}

// ListCategories returns the distinct categories in use.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// FindLowStock retrieves products with stock at or below threshold.
func (s *Service) FindLowStock(ctx context.Context, threshold int64, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindLowStock(ctx, threshold, filter)
}

// Stock reads the current on-hand quantity for a product.
func (s *Service) Stock(ctx context.Context, productID id.ID) (int64, error) {
	p, err := s.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}
