// Package account provides the append-only accounting entry register.
// Entries are written during invoice posting and payment recording and
// are never updated in place; corrections are reversing entries.
package account

import (
	"time"

	"krilo/internal/core/id"
	"krilo/internal/core/types"
)

// EntryType distinguishes the two sides of a posting.
type EntryType string

const (
	Debit  EntryType = "debit"
	Credit EntryType = "credit"
)

// Account names accepted by the register.
const (
	AccountsReceivable = "Accounts Receivable"
	SalesRevenue       = "Sales Revenue"
	PurchaseRevenue    = "Purchase Revenue"
	Cash               = "Cash"
	Expenses           = "Expenses"
)

// allowedAccounts is the closed set of postable account names.
var allowedAccounts = map[string]struct{}{
	AccountsReceivable: {},
	SalesRevenue:       {},
	PurchaseRevenue:    {},
	Cash:               {},
	Expenses:           {},
}

// IsAllowedAccount reports whether the account name is postable.
func IsAllowedAccount(name string) bool {
	_, ok := allowedAccounts[name]
	return ok
}

// MaxEntryAmount is the per-entry amount ceiling.
var MaxEntryAmount = types.MustMoney("1000000")

// Entry is a single ledger line.
type Entry struct {
	ID          id.ID       `db:"id" json:"id"`
	AccountType string      `db:"account_type" json:"accountType"`
	EntryType   EntryType   `db:"entry_type" json:"type"`
	Amount      types.Money `db:"amount" json:"amount"`

	// InvoiceID links the entry to its source document, nil for manual entries
	InvoiceID *id.ID `db:"invoice_id" json:"invoiceId,omitempty"`

	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewEntry creates a ledger entry dated now.
func NewEntry(accountType string, entryType EntryType, amount types.Money, invoiceID *id.ID) Entry {
	now := time.Now().UTC()
	return Entry{
		ID:          id.New(),
		AccountType: accountType,
		EntryType:   entryType,
		Amount:      amount,
		InvoiceID:   invoiceID,
		Date:        now,
		CreatedAt:   now,
	}
}
