package dto

import (
	"krilo/internal/domain/company"
)

// BankDetailsDTO mirrors the bank block printed on invoices.
type BankDetailsDTO struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	Branch        string `json:"branch"`
}

// UpsertCompanySettingsRequest is the body for POST /company-settings.
// The settings row is a singleton; every write is an upsert.
type UpsertCompanySettingsRequest struct {
	CompanyName        string         `json:"companyName" binding:"required"`
	Address            string         `json:"address" binding:"required"`
	Country            string         `json:"country" binding:"required"`
	State              string         `json:"state" binding:"required"`
	City               string         `json:"city" binding:"required"`
	Pincode            string         `json:"pincode" binding:"required"`
	GSTIN              string         `json:"gstin"`
	CompanyLogo        string         `json:"companyLogo"`
	CompanySign        string         `json:"companySign"`
	TermsAndConditions string         `json:"termsAndConditions"`
	ContactNumber      string         `json:"contactNumber"`
	BankDetails        BankDetailsDTO `json:"bankDetails"`
}

// ToEntity converts DTO to domain entity.
func (r *UpsertCompanySettingsRequest) ToEntity() *company.Settings {
	return &company.Settings{
		CompanyName:        r.CompanyName,
		Address:            r.Address,
		Country:            r.Country,
		State:              r.State,
		City:               r.City,
		Pincode:            r.Pincode,
		GSTIN:              r.GSTIN,
		CompanyLogo:        r.CompanyLogo,
		CompanySign:        r.CompanySign,
		TermsAndConditions: r.TermsAndConditions,
		ContactNumber:      r.ContactNumber,
		BankDetails: company.BankDetails{
			BankName:      r.BankDetails.BankName,
			AccountNumber: r.BankDetails.AccountNumber,
			IFSC:          r.BankDetails.IFSC,
			Branch:        r.BankDetails.Branch,
		},
	}
}

// CompanySettingsResponse is the response body for company settings.
type CompanySettingsResponse struct {
	CompanyName        string         `json:"companyName"`
	Address            string         `json:"address"`
	Country            string         `json:"country"`
	State              string         `json:"state"`
	City               string         `json:"city"`
	Pincode            string         `json:"pincode"`
	GSTIN              string         `json:"gstin,omitempty"`
	CompanyLogo        string         `json:"companyLogo,omitempty"`
	CompanySign        string         `json:"companySign,omitempty"`
	TermsAndConditions string         `json:"termsAndConditions,omitempty"`
	ContactNumber      string         `json:"contactNumber,omitempty"`
	BankDetails        BankDetailsDTO `json:"bankDetails"`
	Version            int            `json:"version"`
}

// FromCompanySettings creates response DTO from domain entity.
func FromCompanySettings(s *company.Settings) *CompanySettingsResponse {
	return &CompanySettingsResponse{
		CompanyName:        s.CompanyName,
		Address:            s.Address,
		Country:            s.Country,
		State:              s.State,
		City:               s.City,
		Pincode:            s.Pincode,
		GSTIN:              s.GSTIN,
		CompanyLogo:        s.CompanyLogo,
		CompanySign:        s.CompanySign,
		TermsAndConditions: s.TermsAndConditions,
		ContactNumber:      s.ContactNumber,
		BankDetails: BankDetailsDTO{
			BankName:      s.BankDetails.BankName,
			AccountNumber: s.BankDetails.AccountNumber,
			IFSC:          s.BankDetails.IFSC,
			Branch:        s.BankDetails.Branch,
		},
		Version: s.Version,
	}
}
