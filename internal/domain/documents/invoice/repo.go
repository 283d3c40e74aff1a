package invoice

import (
	"context"
	"time"

	"krilo/internal/core/id"
	"krilo/internal/domain"
)

// Repository defines the interface for invoice persistence.
// Invoices are never deleted; the document trail is permanent.
type Repository interface {
	// Create inserts the invoice header.
	Create(ctx context.Context, inv *Invoice) error

	// SaveLines replaces the line items of an invoice.
	SaveLines(ctx context.Context, invoiceID id.ID, lines []Line) error

	// GetByID retrieves the invoice header without lines.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetLines retrieves line items ordered by line number.
	GetLines(ctx context.Context, invoiceID id.ID) ([]Line, error)

	// GetLinesForInvoices retrieves line items for a batch of invoices,
	// keyed by invoice, each slice ordered by line number.
	GetLinesForInvoices(ctx context.Context, invoiceIDs []id.ID) (map[id.ID][]Line, error)

	// UpdatePayment persists the received/pending fields with
	// optimistic locking on the document version.
	UpdatePayment(ctx context.Context, inv *Invoice) error

	// List retrieves invoice headers with filtering, newest first.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)
}

// ListFilter for filtering invoice queries.
type ListFilter struct {
	Type         *Type
	CustomerID   *id.ID
	CustomerName *string
	FromDate     *time.Time
	ToDate       *time.Time
	Limit        int
	Offset       int
}
