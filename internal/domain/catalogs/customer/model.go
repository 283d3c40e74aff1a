// Package customer provides the Customer catalog.
package customer

import (
	"context"

	"krilo/internal/core/apperror"
	"krilo/internal/core/entity"
)

// Customer represents a buyer that invoices are issued to.
// State is compared against the company state to decide whether a sale
// is interstate (IGST) or intrastate (CGST+SGST).
type Customer struct {
	entity.Base

	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Country string `db:"country" json:"country"`
	State   string `db:"state" json:"state"`
	City    string `db:"city" json:"city"`
	Pincode string `db:"pincode" json:"pincode"`

	// GSTIN is the customer's tax registration number, optional
	GSTIN string `db:"gstin" json:"gstin,omitempty"`
}

// New creates a new Customer with required fields.
func New(name, address, country, state, city, pincode string) *Customer {
	return &Customer{
		Base:    entity.NewBase(),
		Name:    name,
		Address: address,
		Country: country,
		State:   state,
		City:    city,
		Pincode: pincode,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	required := []struct {
		field, value string
	}{
		{"name", c.Name},
		{"address", c.Address},
		{"country", c.Country},
		{"state", c.State},
		{"city", c.City},
		{"pincode", c.Pincode},
	}
	for _, r := range required {
		if r.value == "" {
			return apperror.NewValidation("customer "+r.field+" is required").
				WithDetail("field", r.field)
		}
	}
	return nil
}
