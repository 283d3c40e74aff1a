package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krilo/internal/core/id"
	"krilo/internal/core/types"
	"krilo/internal/domain/registers/account"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func salesInvoice(total string) *Invoice {
	inv := New(id.New(), "ACME Traders", TypeSalesInvoice)
	inv.Total = money(total)
	return inv
}

func TestPlanStockAdjustments(t *testing.T) {
	p1 := id.New()
	p2 := id.New()

	lines := []Line{
		{ProductID: p1, Quantity: 4},
		{ProductID: p2, Quantity: 2},
		{ProductID: p1, Quantity: 3},
	}

	t.Run("sales decrement and merge per product", func(t *testing.T) {
		adjustments := planStockAdjustments(TypeSalesInvoice, lines)
		require.Len(t, adjustments, 2)
		assert.Equal(t, p1, adjustments[0].ProductID)
		assert.Equal(t, int64(-7), adjustments[0].Delta)
		assert.Equal(t, p2, adjustments[1].ProductID)
		assert.Equal(t, int64(-2), adjustments[1].Delta)
	})

	t.Run("purchases increment", func(t *testing.T) {
		adjustments := planStockAdjustments(TypePurchaseInvoice, lines)
		require.Len(t, adjustments, 2)
		assert.Equal(t, int64(7), adjustments[0].Delta)
		assert.Equal(t, int64(2), adjustments[1].Delta)
	})

	t.Run("quotation and sales order touch nothing", func(t *testing.T) {
		assert.Nil(t, planStockAdjustments(TypeQuotation, lines))
		assert.Nil(t, planStockAdjustments(TypeSalesOrder, lines))
	})
}

func TestPlanLedgerEntries_SalesNoPayment(t *testing.T) {
	inv := salesInvoice("1180")

	entries := planLedgerEntries(inv)

	require.Len(t, entries, 1)
	assert.Equal(t, account.AccountsReceivable, entries[0].AccountType)
	assert.Equal(t, account.Credit, entries[0].EntryType)
	assert.True(t, entries[0].Amount.Equal(money("1180")))
	require.NotNil(t, entries[0].InvoiceID)
	assert.Equal(t, inv.ID, *entries[0].InvoiceID)
}

func TestPlanLedgerEntries_SalesPartialPayment(t *testing.T) {
	inv := salesInvoice("1000")
	inv.SetReceived(money("500"))

	entries := planLedgerEntries(inv)

	require.Len(t, entries, 2)
	assert.Equal(t, account.Credit, entries[0].EntryType)
	assert.True(t, entries[0].Amount.Equal(money("1000")))
	assert.Equal(t, account.Debit, entries[1].EntryType)
	assert.True(t, entries[1].Amount.Equal(money("500")))

	// Credits minus debits equal the outstanding balance
	outstanding := entries[0].Amount.Sub(entries[1].Amount)
	require.NotNil(t, inv.TotalPending)
	assert.True(t, outstanding.Equal(*inv.TotalPending))
}

func TestPlanLedgerEntries_ZeroReceivedPostsLikeUntracked(t *testing.T) {
	tracked := salesInvoice("1000")
	tracked.SetReceived(decimal.Zero)

	untracked := salesInvoice("1000")

	trackedEntries := planLedgerEntries(tracked)
	untrackedEntries := planLedgerEntries(untracked)

	require.Len(t, trackedEntries, 1)
	require.Len(t, untrackedEntries, 1)
	assert.Equal(t, trackedEntries[0].EntryType, untrackedEntries[0].EntryType)
	assert.True(t, trackedEntries[0].Amount.Equal(untrackedEntries[0].Amount))
}

func TestPlanLedgerEntries_Purchase(t *testing.T) {
	inv := New(id.New(), "Supplies Co", TypePurchaseInvoice)
	inv.Total = money("750")

	entries := planLedgerEntries(inv)

	require.Len(t, entries, 1)
	assert.Equal(t, account.PurchaseRevenue, entries[0].AccountType)
	assert.Equal(t, account.Debit, entries[0].EntryType)
	assert.True(t, entries[0].Amount.Equal(money("750")))
}

func TestPlanLedgerEntries_NonPostingKinds(t *testing.T) {
	for _, invType := range []Type{TypeQuotation, TypeSalesOrder} {
		inv := New(id.New(), "ACME Traders", invType)
		inv.Total = money("500")
		assert.Nil(t, planLedgerEntries(inv), string(invType))
	}
}

func TestPlanPaymentEntries(t *testing.T) {
	inv := salesInvoice("1000")

	t.Run("positive delta posts a debit", func(t *testing.T) {
		entries := planPaymentEntries(inv, money("500"))
		require.Len(t, entries, 1)
		assert.Equal(t, account.AccountsReceivable, entries[0].AccountType)
		assert.Equal(t, account.Debit, entries[0].EntryType)
		assert.True(t, entries[0].Amount.Equal(money("500")))
	})

	t.Run("negative delta posts a reversing credit", func(t *testing.T) {
		entries := planPaymentEntries(inv, money("-200"))
		require.Len(t, entries, 1)
		assert.Equal(t, account.Credit, entries[0].EntryType)
		assert.True(t, entries[0].Amount.Equal(money("200")))
	})

	t.Run("zero delta posts nothing", func(t *testing.T) {
		assert.Nil(t, planPaymentEntries(inv, decimal.Zero))
	})

	t.Run("purchases carry no receivables", func(t *testing.T) {
		purchase := New(id.New(), "Supplies Co", TypePurchaseInvoice)
		purchase.Total = money("1000")
		assert.Nil(t, planPaymentEntries(purchase, money("500")))
	})
}
