// Package product provides the Product catalog.
// On-hand stock is mutated only through the inventory register's atomic
// adjustment, never by direct writes from this package.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"krilo/internal/core/apperror"
	"krilo/internal/core/entity"
	"krilo/internal/core/types"
)

// Product represents a sellable or purchasable item.
type Product struct {
	entity.Base

	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`

	// Price is the default unit price
	Price types.Money `db:"price" json:"price"`

	// Stock is the on-hand quantity. Non-negative invariant, enforced
	// both by the conditional stock update and a DB CHECK constraint.
	Stock int64 `db:"stock" json:"stock"`

	// GSTRate is the tax rate in percent (0-100)
	GSTRate types.Money `db:"gst_rate" json:"gstRate"`

	// HSNCode is the tariff classification used for the tax breakup
	HSNCode string `db:"hsn_code" json:"hsnCode,omitempty"`

	Description string `db:"description" json:"description,omitempty"`
}

// New creates a new Product with required fields.
func New(name, category string, price types.Money, stock int64) *Product {
	return &Product{
		Base:     entity.NewBase(),
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
		GSTRate:  decimal.Zero,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}
	if p.Category == "" {
		return apperror.NewValidation("product category is required").
			WithDetail("field", "category")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}
	if p.GSTRate.IsNegative() || p.GSTRate.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("gst rate must be between 0 and 100").
			WithDetail("field", "gstRate")
	}
	return nil
}
