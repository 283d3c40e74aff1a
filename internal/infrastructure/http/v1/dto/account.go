package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain/registers/account"
)

// --- Request DTOs ---

// CreateEntryRequest is the body for a manual ledger entry.
type CreateEntryRequest struct {
	AccountType string          `json:"accountType" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	InvoiceID   *string         `json:"invoiceId"`
}

// ToEntry converts DTO to a ledger entry.
func (r *CreateEntryRequest) ToEntry() (account.Entry, error) {
	entryType := account.EntryType(r.Type)
	if entryType != account.Debit && entryType != account.Credit {
		return account.Entry{}, apperror.NewValidation("entry type must be debit or credit").
			WithDetail("type", r.Type)
	}

	var invoiceID *id.ID
	if r.InvoiceID != nil && *r.InvoiceID != "" {
		parsed, err := id.Parse(*r.InvoiceID)
		if err != nil {
			return account.Entry{}, apperror.NewValidation("invalid invoice id").
				WithDetail("invoiceId", *r.InvoiceID)
		}
		invoiceID = &parsed
	}

	return account.NewEntry(r.AccountType, entryType, r.Amount, invoiceID), nil
}

// --- Response DTOs ---

// EntryResponse is the response body for a ledger entry.
type EntryResponse struct {
	ID          string            `json:"id"`
	AccountType string            `json:"accountType"`
	Type        account.EntryType `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	InvoiceID   *string           `json:"invoiceId,omitempty"`
	Date        time.Time         `json:"date"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// FromEntry creates response DTO from a ledger entry.
func FromEntry(e account.Entry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID.String(),
		AccountType: e.AccountType,
		Type:        e.EntryType,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
	if e.InvoiceID != nil {
		s := e.InvoiceID.String()
		resp.InvoiceID = &s
	}
	return resp
}

// BalanceResponse is the response for an account balance query.
type BalanceResponse struct {
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	AsOf        time.Time       `json:"asOf"`
}
