// Package company provides the per-tenant company settings singleton.
// Each tenant database holds at most one settings row; writes are upserts.
package company

import (
	"context"
	"strings"

	"krilo/internal/core/apperror"
	"krilo/internal/core/entity"
)

// BankDetails holds the bank account printed on invoices.
type BankDetails struct {
	BankName      string `db:"bank_name" json:"bankName,omitempty"`
	AccountNumber string `db:"account_number" json:"accountNumber,omitempty"`
	IFSC          string `db:"ifsc" json:"ifsc,omitempty"`
	Branch        string `db:"branch" json:"branch,omitempty"`
}

// Settings is the company profile of a tenant.
// Its State field is the seller side of the interstate/intrastate decision.
type Settings struct {
	entity.Base

	CompanyName string `db:"company_name" json:"companyName"`
	Address     string `db:"address" json:"address"`
	Country     string `db:"country" json:"country"`
	State       string `db:"state" json:"state"`
	City        string `db:"city" json:"city"`
	Pincode     string `db:"pincode" json:"pincode"`

	GSTIN string `db:"gstin" json:"gstin,omitempty"`

	// Logo and signature are stored as object paths, not blobs
	CompanyLogo string `db:"company_logo" json:"companyLogo,omitempty"`
	CompanySign string `db:"company_sign" json:"companySign,omitempty"`

	TermsAndConditions string `db:"terms_and_conditions" json:"termsAndConditions,omitempty"`
	ContactNumber      string `db:"contact_number" json:"contactNumber,omitempty"`

	BankDetails BankDetails `db:"-" json:"bankDetails"`
}

// Normalize trims whitespace on all text fields before validation.
func (s *Settings) Normalize() {
	s.CompanyName = strings.TrimSpace(s.CompanyName)
	s.Address = strings.TrimSpace(s.Address)
	s.Country = strings.TrimSpace(s.Country)
	s.State = strings.TrimSpace(s.State)
	s.City = strings.TrimSpace(s.City)
	s.Pincode = strings.TrimSpace(s.Pincode)
	s.GSTIN = strings.TrimSpace(s.GSTIN)
	s.TermsAndConditions = strings.TrimSpace(s.TermsAndConditions)
	s.ContactNumber = strings.TrimSpace(s.ContactNumber)
	s.BankDetails.BankName = strings.TrimSpace(s.BankDetails.BankName)
	s.BankDetails.AccountNumber = strings.TrimSpace(s.BankDetails.AccountNumber)
	s.BankDetails.IFSC = strings.TrimSpace(s.BankDetails.IFSC)
	s.BankDetails.Branch = strings.TrimSpace(s.BankDetails.Branch)
}

// Validate implements entity.Validatable.
func (s *Settings) Validate(ctx context.Context) error {
	required := []struct {
		field, value string
	}{
		{"companyName", s.CompanyName},
		{"address", s.Address},
		{"country", s.Country},
		{"state", s.State},
		{"city", s.City},
		{"pincode", s.Pincode},
	}
	for _, r := range required {
		if r.value == "" {
			return apperror.NewValidation("company "+r.field+" is required").
				WithDetail("field", r.field)
		}
	}
	return nil
}
