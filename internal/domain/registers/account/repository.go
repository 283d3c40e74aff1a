package account

import (
	"context"
	"time"

	"krilo/internal/core/id"
	"krilo/internal/core/types"
)

// Repository defines operations for the accounting entry register.
type Repository interface {
	// CreateEntries batch inserts ledger entries (used during posting).
	CreateEntries(ctx context.Context, entries []Entry) error

	// GetByInvoice retrieves all entries linked to an invoice,
	// ordered by creation time.
	GetByInvoice(ctx context.Context, invoiceID id.ID) ([]Entry, error)

	// List retrieves entries with filtering, newest first.
	List(ctx context.Context, filter EntryFilter) ([]Entry, error)

	// GetAccountBalance computes debit minus credit for an account.
	GetAccountBalance(ctx context.Context, accountType string, asOf time.Time) (types.Money, error)
}

// EntryFilter for filtering entry queries.
type EntryFilter struct {
	AccountType *string
	EntryType   *EntryType
	InvoiceID   *id.ID
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}
