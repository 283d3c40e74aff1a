package export

import (
	"context"
	"fmt"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain"
	"krilo/internal/domain/catalogs/customer"
	"krilo/internal/domain/catalogs/product"
	"krilo/internal/domain/company"
	"krilo/internal/domain/documents/invoice"
	"krilo/internal/domain/tax"
)

// Builder assembles the full render payload for an invoice.
type Builder struct {
	invoices  *invoice.Service
	customers customer.Repository
	products  product.Repository
	companies *company.Service
}

// NewBuilder creates a document builder.
func NewBuilder(
	invoices *invoice.Service,
	customers customer.Repository,
	products product.Repository,
	companies *company.Service,
) *Builder {
	return &Builder{
		invoices:  invoices,
		customers: customers,
		products:  products,
		companies: companies,
	}
}

// Build loads the invoice with lines and resolves everything a renderer
// needs: tax breakup, customer block, product names, company profile.
func (b *Builder) Build(ctx context.Context, invoiceID id.ID) (*InvoiceDocument, error) {
	inv, err := b.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	summary, err := b.invoices.TaxSummary(ctx, inv)
	if err != nil {
		return nil, err
	}

	cust, err := b.customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]id.ID, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	result, err := b.products.List(ctx, domain.ListFilter{IDs: productIDs, Limit: len(productIDs)})
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	names := make(map[string]string, len(result.Items))
	for _, p := range result.Items {
		names[p.ID.String()] = p.Name
	}

	doc := &InvoiceDocument{
		Invoice:         inv,
		TaxSummary:      summary,
		CustomerName:    cust.Name,
		CustomerAddress: fmt.Sprintf("%s, %s, %s %s, %s", cust.Address, cust.City, cust.State, cust.Pincode, cust.Country),
		CustomerGSTIN:   cust.GSTIN,
		ProductNames:    names,
		AmountInWords:   tax.AmountInWords(inv.Total),
	}

	settings, err := b.companies.Get(ctx)
	if err != nil {
		// A tenant may render invoices before configuring the company
		if !apperror.IsNotFound(err) {
			return nil, err
		}
	} else {
		doc.Company = settings
	}

	return doc, nil
}
