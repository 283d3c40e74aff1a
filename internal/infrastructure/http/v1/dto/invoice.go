package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// CreateInvoiceRequest is the invoice submission body. Products and
// Quantities are parallel arrays; Prices and Discounts are optional
// parallel arrays (missing entries fall back to catalog price and zero
// discount).
type CreateInvoiceRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	Customer   string `json:"customer" binding:"required"`
	Type       string `json:"type" binding:"required"`

	Products   []string `json:"products" binding:"required"`
	Quantities []int64  `json:"quantities" binding:"required"`

	Prices    []decimal.Decimal `json:"prices"`
	Discounts []decimal.Decimal `json:"discounts"`

	Total              decimal.Decimal  `json:"total"`
	GrandTotalDiscount decimal.Decimal  `json:"grandTotalDiscount"`
	TotalReceived      *decimal.Decimal `json:"totalReceived"`
}

// ToCreateInput converts the transport body into engine input.
func (r *CreateInvoiceRequest) ToCreateInput() (invoice.CreateInput, error) {
	var input invoice.CreateInput

	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return input, apperror.NewValidation("invalid customer id").
			WithDetail("customerId", r.CustomerID)
	}

	invType, err := invoice.ParseType(r.Type)
	if err != nil {
		return input, err
	}

	if len(r.Products) != len(r.Quantities) {
		return input, apperror.NewValidation("products and quantities must have the same length").
			WithDetail("products", len(r.Products)).
			WithDetail("quantities", len(r.Quantities))
	}
	if len(r.Prices) > 0 && len(r.Prices) != len(r.Products) {
		return input, apperror.NewValidation("prices must match products length")
	}
	if len(r.Discounts) > 0 && len(r.Discounts) != len(r.Products) {
		return input, apperror.NewValidation("discounts must match products length")
	}

	lines := make([]invoice.LineInput, 0, len(r.Products))
	for i, rawID := range r.Products {
		productID, err := id.Parse(rawID)
		if err != nil {
			return input, apperror.NewValidation("invalid product id").
				WithDetail("productId", rawID)
		}

		line := invoice.LineInput{
			ProductID: productID,
			Quantity:  r.Quantities[i],
		}
		if len(r.Prices) > 0 {
			price := r.Prices[i]
			line.UnitPrice = &price
		}
		if len(r.Discounts) > 0 {
			line.Discount = r.Discounts[i]
		}
		lines = append(lines, line)
	}

	input = invoice.CreateInput{
		CustomerID:         customerID,
		CustomerName:       r.Customer,
		Type:               invType,
		Lines:              lines,
		Total:              r.Total,
		GrandTotalDiscount: r.GrandTotalDiscount,
		TotalReceived:      r.TotalReceived,
	}
	return input, nil
}

// UpdatePaymentRequest is the body for PUT /invoices/{id}.
type UpdatePaymentRequest struct {
	TotalReceived decimal.Decimal `json:"totalReceived"`
}

// --- Response DTOs ---

// InvoiceLineResponse is one invoice line with the product expanded.
type InvoiceLineResponse struct {
	LineNo      int             `json:"lineNo"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	GSTAmount   decimal.Decimal `json:"gstAmount"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the response body for an invoice.
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	CustomerID         string                `json:"customerId"`
	Customer           string                `json:"customer"`
	Type               invoice.Type          `json:"type"`
	Date               time.Time             `json:"date"`
	Total              decimal.Decimal       `json:"total"`
	GrandTotalDiscount decimal.Decimal       `json:"grandTotalDiscount"`
	TotalReceived      *decimal.Decimal      `json:"totalReceived,omitempty"`
	TotalPending       *decimal.Decimal      `json:"totalPendingAmount,omitempty"`
	Lines              []InvoiceLineResponse `json:"lines"`
	Version            int                   `json:"version"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// FromInvoice creates response DTO from domain entity. productNames is
// keyed by product id string and may be nil.
func FromInvoice(inv *invoice.Invoice, productNames map[string]string) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, InvoiceLineResponse{
			LineNo:      l.LineNo,
			ProductID:   l.ProductID.String(),
			ProductName: productNames[l.ProductID.String()],
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			GSTAmount:   l.GSTAmount,
			Amount:      l.Amount,
		})
	}

	return &InvoiceResponse{
		ID:                 inv.ID.String(),
		CustomerID:         inv.CustomerID.String(),
		Customer:           inv.CustomerName,
		Type:               inv.Type,
		Date:               inv.Date,
		Total:              inv.Total,
		GrandTotalDiscount: inv.GrandTotalDiscount,
		TotalReceived:      inv.TotalReceived,
		TotalPending:       inv.TotalPending,
		Lines:              lines,
		Version:            inv.Version,
		CreatedAt:          inv.CreatedAt,
	}
}
