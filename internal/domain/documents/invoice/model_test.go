package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krilo/internal/core/id"
)

func TestParseType(t *testing.T) {
	for _, raw := range []string{"quotation", "sales_order", "sales_invoice", "purchase_invoice"} {
		got, err := ParseType(raw)
		require.NoError(t, err)
		assert.Equal(t, Type(raw), got)
	}

	_, err := ParseType("credit_note")
	assert.Error(t, err)
	_, err = ParseType("")
	assert.Error(t, err)
}

func TestTypeIsPosting(t *testing.T) {
	assert.True(t, TypeSalesInvoice.IsPosting())
	assert.True(t, TypePurchaseInvoice.IsPosting())
	assert.False(t, TypeQuotation.IsPosting())
	assert.False(t, TypeSalesOrder.IsPosting())
}

func TestAddLineRecalculatesTotals(t *testing.T) {
	inv := New(id.New(), "ACME Traders", TypeSalesInvoice)

	// 100 x 2, 10% discount, 32.40 GST -> 180 + 32.40 = 212.40
	inv.AddLine(id.New(), 2, money("100"), money("10"), money("32.40"))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.True(t, inv.Lines[0].Amount.Equal(money("212.40")), "got %s", inv.Lines[0].Amount)
	assert.True(t, inv.Total.Equal(money("212.40")))

	// 50 x 1, no discount, 9 GST -> 59
	inv.AddLine(id.New(), 1, money("50"), money("0"), money("9"))
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, 2, inv.Lines[1].LineNo)
	assert.True(t, inv.Total.Equal(money("271.40")), "got %s", inv.Total)
}

func TestSetReceivedKeepsPendingInvariant(t *testing.T) {
	inv := salesInvoice("1000")

	inv.SetReceived(money("400"))
	require.NotNil(t, inv.TotalReceived)
	require.NotNil(t, inv.TotalPending)
	assert.True(t, inv.TotalReceived.Equal(money("400")))
	assert.True(t, inv.TotalPending.Equal(money("600")))

	inv.SetReceived(money("1000"))
	assert.True(t, inv.TotalPending.IsZero())
}

func TestReceivedOrZero(t *testing.T) {
	inv := salesInvoice("500")
	assert.True(t, inv.ReceivedOrZero().IsZero())

	inv.SetReceived(money("120"))
	assert.True(t, inv.ReceivedOrZero().Equal(money("120")))
}

func TestInvoiceValidate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Invoice {
		inv := New(id.New(), "ACME Traders", TypeSalesInvoice)
		inv.AddLine(id.New(), 2, money("100"), money("0"), money("36"))
		return inv
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, valid().Validate(ctx))
	})

	t.Run("missing customer", func(t *testing.T) {
		inv := valid()
		inv.CustomerID = id.Nil()
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("missing customer name", func(t *testing.T) {
		inv := valid()
		inv.CustomerName = ""
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("invalid type", func(t *testing.T) {
		inv := valid()
		inv.Type = Type("refund")
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("no lines", func(t *testing.T) {
		inv := New(id.New(), "ACME Traders", TypeSalesInvoice)
		inv.Total = money("100")
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("zero quantity line", func(t *testing.T) {
		inv := valid()
		inv.Lines[0].Quantity = 0
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("negative price line", func(t *testing.T) {
		inv := valid()
		inv.Lines[0].UnitPrice = money("-5")
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("discount over 100", func(t *testing.T) {
		inv := valid()
		inv.Lines[0].Discount = money("101")
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("non positive total", func(t *testing.T) {
		inv := valid()
		inv.Total = money("0")
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("received above total", func(t *testing.T) {
		inv := valid()
		inv.SetReceived(inv.Total.Add(money("1")))
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("received equal to total", func(t *testing.T) {
		inv := valid()
		inv.SetReceived(inv.Total)
		assert.NoError(t, inv.Validate(ctx))
	})
}
