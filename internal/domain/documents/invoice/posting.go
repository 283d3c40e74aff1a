package invoice

import (
	"krilo/internal/core/id"
	"krilo/internal/core/types"
	"krilo/internal/domain/registers/account"
	"krilo/internal/domain/registers/inventory"
)

// planStockAdjustments maps invoice lines to signed stock deltas.
// Sales decrement, purchases increment, other kinds touch nothing.
// Quantities for the same product are merged into one delta so the
// conditional update sees the combined effect.
func planStockAdjustments(invType Type, lines []Line) []inventory.Adjustment {
	if !invType.IsPosting() {
		return nil
	}

	sign := int64(-1)
	if invType == TypePurchaseInvoice {
		sign = 1
	}

	deltas := make(map[id.ID]int64)
	order := make([]id.ID, 0, len(lines))
	for _, line := range lines {
		if _, seen := deltas[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		deltas[line.ProductID] += sign * line.Quantity
	}

	adjustments := make([]inventory.Adjustment, 0, len(order))
	for _, productID := range order {
		adjustments = append(adjustments, inventory.Adjustment{
			ProductID: productID,
			Delta:     deltas[productID],
		})
	}
	return adjustments
}

// planLedgerEntries derives ledger postings from the invoice state.
//
// purchase_invoice posts one Purchase Revenue debit for the total.
// sales_invoice posts an Accounts Receivable credit for the total;
// when a payment is already tracked its amount posts as a matching
// debit, so the entries net to the outstanding balance. A tracked
// payment of zero posts the same entries as an untracked one.
func planLedgerEntries(inv *Invoice) []account.Entry {
	invoiceID := inv.ID

	switch inv.Type {
	case TypePurchaseInvoice:
		return []account.Entry{
			account.NewEntry(account.PurchaseRevenue, account.Debit, inv.Total, &invoiceID),
		}

	case TypeSalesInvoice:
		entries := []account.Entry{
			account.NewEntry(account.AccountsReceivable, account.Credit, inv.Total, &invoiceID),
		}
		if inv.TotalReceived != nil && inv.TotalReceived.IsPositive() {
			entries = append(entries,
				account.NewEntry(account.AccountsReceivable, account.Debit, *inv.TotalReceived, &invoiceID))
		}
		return entries

	default:
		return nil
	}
}

// planPaymentEntries derives ledger postings for a payment delta.
// Positive deltas post an Accounts Receivable debit; negative deltas
// post a reversing credit so the ledger stays consistent with the
// invoice fields. Only sales invoices carry receivables.
func planPaymentEntries(inv *Invoice, delta types.Money) []account.Entry {
	if inv.Type != TypeSalesInvoice || delta.IsZero() {
		return nil
	}

	invoiceID := inv.ID
	if delta.IsNegative() {
		return []account.Entry{
			account.NewEntry(account.AccountsReceivable, account.Credit, delta.Neg(), &invoiceID),
		}
	}
	return []account.Entry{
		account.NewEntry(account.AccountsReceivable, account.Debit, delta, &invoiceID),
	}
}
