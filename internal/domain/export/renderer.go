// Package export renders a finished invoice, its tax breakup and the
// company profile into a byte stream. The engine treats renderers as
// external collaborators; only the payload shape is fixed here.
package export

import (
	"context"

	"krilo/internal/domain/company"
	"krilo/internal/domain/documents/invoice"
	"krilo/internal/domain/tax"
)

// InvoiceDocument is the complete payload handed to a renderer.
type InvoiceDocument struct {
	Invoice    *invoice.Invoice  `json:"invoice"`
	TaxSummary tax.Summary       `json:"taxSummary"`
	Company    *company.Settings `json:"company,omitempty"`

	// Customer display block
	CustomerName    string `json:"customerName"`
	CustomerAddress string `json:"customerAddress"`
	CustomerGSTIN   string `json:"customerGstin,omitempty"`

	// ProductNames maps line product ids to display names
	ProductNames map[string]string `json:"productNames"`

	// AmountInWords is the grand total spelled out
	AmountInWords string `json:"amountInWords"`
}

// Renderer turns an invoice document into bytes.
type Renderer interface {
	// Render produces the document body and its media type.
	Render(ctx context.Context, doc *InvoiceDocument) ([]byte, string, error)
}
