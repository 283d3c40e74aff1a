// Package account provides the accounting entry register service.
package account

import (
	"context"
	"fmt"
	"time"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/core/tenant"
	"krilo/internal/core/types"
	"krilo/pkg/logger"
)

// Service provides business operations for the accounting register.
type Service struct {
	repo Repository
}

// NewService creates a new accounting register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordEntries validates and appends ledger entries.
func (s *Service) RecordEntries(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	for i, e := range entries {
		if !IsAllowedAccount(e.AccountType) {
			return apperror.NewValidation(fmt.Sprintf("entry %d: unknown account %q", i, e.AccountType)).
				WithDetail("account_type", e.AccountType)
		}
		if e.EntryType != Debit && e.EntryType != Credit {
			return apperror.NewValidation(fmt.Sprintf("entry %d: type must be debit or credit", i))
		}
		if !e.Amount.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("entry %d: amount must be positive", i)).
				WithDetail("amount", e.Amount.String())
		}
		if e.Amount.GreaterThan(MaxEntryAmount) {
			return apperror.NewValidation(fmt.Sprintf("entry %d: amount exceeds limit", i)).
				WithDetail("amount", e.Amount.String()).
				WithDetail("limit", MaxEntryAmount.String())
		}
	}

	// Joins the caller's transaction when one is open (invoice posting),
	// otherwise starts its own (manual entries).
	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return err
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.CreateEntries(ctx, entries)
	})
	if err != nil {
		return fmt.Errorf("create entries: %w", err)
	}

	logger.Info(ctx, "recorded accounting entries",
		"count", len(entries),
		"account", entries[0].AccountType,
	)

	return nil
}

// GetByInvoice retrieves all entries linked to an invoice.
func (s *Service) GetByInvoice(ctx context.Context, invoiceID id.ID) ([]Entry, error) {
	return s.repo.GetByInvoice(ctx, invoiceID)
}

// List retrieves entries with filtering.
func (s *Service) List(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.AccountType != nil && !IsAllowedAccount(*filter.AccountType) {
		return nil, apperror.NewValidation("unknown account").
			WithDetail("account_type", *filter.AccountType)
	}
	return s.repo.List(ctx, filter)
}

// GetAccountBalance computes debit minus credit for an account as of a date.
func (s *Service) GetAccountBalance(ctx context.Context, accountType string, asOf time.Time) (types.Money, error) {
	if !IsAllowedAccount(accountType) {
		return types.Zero(), apperror.NewValidation("unknown account").
			WithDetail("account_type", accountType)
	}
	return s.repo.GetAccountBalance(ctx, accountType, asOf)
}
