// Package invoice provides the invoice document and its posting engine.
package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"krilo/internal/core/apperror"
	"krilo/internal/core/entity"
	"krilo/internal/core/id"
	"krilo/internal/core/types"
)

// Type enumerates the document kinds.
// Only sales_invoice and purchase_invoice touch stock and the ledger;
// quotation and sales_order are purely informational.
type Type string

const (
	TypeQuotation       Type = "quotation"
	TypeSalesOrder      Type = "sales_order"
	TypeSalesInvoice    Type = "sales_invoice"
	TypePurchaseInvoice Type = "purchase_invoice"
)

// ParseType validates a raw document type string.
func ParseType(raw string) (Type, error) {
	switch t := Type(raw); t {
	case TypeQuotation, TypeSalesOrder, TypeSalesInvoice, TypePurchaseInvoice:
		return t, nil
	default:
		return "", apperror.NewValidation("invalid invoice type").
			WithDetail("type", raw)
	}
}

// IsPosting reports whether this document kind mutates stock and
// posts ledger entries.
func (t Type) IsPosting() bool {
	return t == TypeSalesInvoice || t == TypePurchaseInvoice
}

// Invoice represents a billing document with its line items.
type Invoice struct {
	entity.Base

	CustomerID   id.ID  `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customer"`

	Type Type      `db:"type" json:"type"`
	Date time.Time `db:"date" json:"date"`

	// Totals (calculated from lines)
	Total              types.Money `db:"total" json:"total"`
	GrandTotalDiscount types.Money `db:"grand_total_discount" json:"grandTotalDiscount"`

	// TotalReceived is nil until payment tracking starts for the invoice
	TotalReceived *types.Money `db:"total_received" json:"totalReceived"`

	// TotalPending is total minus received; nil whenever TotalReceived is nil
	TotalPending *types.Money `db:"total_pending" json:"totalPendingAmount"`

	// Table part: line items
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one invoice line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID       `db:"product_id" json:"productId"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// Discount is a percentage (0-100) applied to price*quantity
	Discount types.Money `db:"discount" json:"discount"`

	// GSTAmount is the computed tax for the line (igst or cgst+sgst)
	GSTAmount types.Money `db:"gst_amount" json:"gstAmount"`

	// Amount is the line extension: taxable after discount plus tax
	Amount types.Money `db:"amount" json:"amount"`
}

// New creates a new invoice document dated now.
func New(customerID id.ID, customerName string, invType Type) *Invoice {
	return &Invoice{
		Base:         entity.NewBase(),
		CustomerID:   customerID,
		CustomerName: customerName,
		Type:         invType,
		Date:         time.Now().UTC(),
		Total:        decimal.Zero,
		Lines:        make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
// GSTAmount is the precomputed tax for the line.
func (inv *Invoice) AddLine(productID id.ID, quantity int64, unitPrice, discount, gstAmount types.Money) {
	taxable := unitPrice.Mul(decimal.NewFromInt(quantity))
	discounted := taxable.Sub(taxable.Mul(discount).Div(decimal.NewFromInt(100)))

	line := Line{
		LineID:    id.New(),
		LineNo:    len(inv.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Discount:  discount,
		GSTAmount: gstAmount,
		Amount:    discounted.Add(gstAmount),
	}

	inv.Lines = append(inv.Lines, line)
	inv.recalculateTotals()
}

func (inv *Invoice) recalculateTotals() {
	total := decimal.Zero
	for _, line := range inv.Lines {
		total = total.Add(line.Amount)
	}
	inv.Total = total
}

// SetReceived updates payment fields, keeping the pending invariant.
func (inv *Invoice) SetReceived(received types.Money) {
	pending := inv.Total.Sub(received)
	inv.TotalReceived = &received
	inv.TotalPending = &pending
}

// ReceivedOrZero returns the tracked payment, treating nil as zero.
func (inv *Invoice) ReceivedOrZero() types.Money {
	if inv.TotalReceived == nil {
		return decimal.Zero
	}
	return *inv.TotalReceived
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if inv.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customer")
	}
	if _, err := ParseType(string(inv.Type)); err != nil {
		return err
	}
	if len(inv.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for _, line := range inv.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", line.LineNo)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be a positive integer").
				WithDetail("field", "lines").
				WithDetail("lineNo", line.LineNo)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", line.LineNo)
		}
		if line.Discount.IsNegative() || line.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return apperror.NewValidation("discount must be between 0 and 100").
				WithDetail("field", "lines").
				WithDetail("lineNo", line.LineNo)
		}
	}

	if !inv.Total.IsPositive() {
		return apperror.NewValidation("total must be a positive number").
			WithDetail("field", "total")
	}

	if inv.TotalReceived != nil {
		received := *inv.TotalReceived
		if received.IsNegative() || received.GreaterThan(inv.Total) {
			return apperror.NewInvalidPayment(received, inv.Total)
		}
	}

	return nil
}
