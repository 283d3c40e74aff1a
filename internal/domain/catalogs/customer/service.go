package customer

import (
	"context"

	"krilo/internal/core/apperror"
	"krilo/internal/domain"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo Repository
}

// NewService creates a new Customer service.
func NewService(repo Repository) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  nil, // Will be obtained from context
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkGSTINUnique)
	base.Hooks().OnBeforeUpdate(svc.checkGSTINUnique)

	return svc
}

// checkGSTINUnique rejects a second customer with the same GSTIN.
// Empty GSTIN is allowed on any number of customers.
func (s *Service) checkGSTINUnique(ctx context.Context, item *Customer) error {
	if item.GSTIN == "" {
		return nil
	}
	existing, err := s.repo.FindByGSTIN(ctx, item.GSTIN)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != item.ID {
		return apperror.NewConflict("customer with this GSTIN already exists").
			WithDetail("gstin", item.GSTIN)
	}
	return nil
}

// FindByGSTIN retrieves a customer by tax registration number.
func (s *Service) FindByGSTIN(ctx context.Context, gstin string) (*Customer, error) {
	return s.repo.FindByGSTIN(ctx, gstin)
}
