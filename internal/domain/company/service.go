package company

import (
	"context"

	"krilo/internal/core/apperror"
	"krilo/internal/core/tenant"
)

// Service provides business logic for company settings.
type Service struct {
	repo Repository
}

// NewService creates a new company settings service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves the current company settings.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

// Upsert normalizes, validates and stores the settings.
func (s *Service) Upsert(ctx context.Context, settings *Settings) error {
	settings.Normalize()
	if err := settings.Validate(ctx); err != nil {
		return err
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Upsert(ctx, settings)
	})
}

// SellerState returns the configured company state, or empty string when
// settings are missing. Tax calculation treats empty as intrastate.
func (s *Service) SellerState(ctx context.Context) (string, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return settings.State, nil
}
