package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krilo/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestIsInterState(t *testing.T) {
	tests := []struct {
		name          string
		companyState  string
		customerState string
		want          bool
	}{
		{"same state", "Karnataka", "Karnataka", false},
		{"different state", "Karnataka", "Maharashtra", true},
		{"case insensitive", "karnataka", "KARNATAKA", false},
		{"whitespace trimmed", " Karnataka ", "Karnataka", false},
		{"both empty treated as intrastate", "", "", false},
		{"one empty is interstate", "Karnataka", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInterState(tt.companyState, tt.customerState))
		})
	}
}

func TestCalculate_InterState(t *testing.T) {
	lines := []Line{
		{Price: money("100"), Quantity: 2, GSTRate: money("18"), HSNCode: "8471"},
	}

	s := Calculate("Karnataka", "Maharashtra", lines)

	require.True(t, s.InterState)
	require.Len(t, s.Lines, 1)

	lt := s.Lines[0]
	assert.True(t, lt.TaxableAmount.Equal(money("200")), "taxable: %s", lt.TaxableAmount)
	assert.True(t, lt.IGST.Equal(money("36")), "igst: %s", lt.IGST)
	assert.True(t, lt.CGST.IsZero())
	assert.True(t, lt.SGST.IsZero())
	assert.True(t, lt.LineTotal.Equal(money("236")))
}

func TestCalculate_IntraState(t *testing.T) {
	lines := []Line{
		{Price: money("100"), Quantity: 2, GSTRate: money("18"), HSNCode: "8471"},
	}

	s := Calculate("Karnataka", "Karnataka", lines)

	require.False(t, s.InterState)
	lt := s.Lines[0]
	assert.True(t, lt.IGST.IsZero())
	assert.True(t, lt.CGST.Equal(money("18")), "cgst: %s", lt.CGST)
	assert.True(t, lt.SGST.Equal(money("18")), "sgst: %s", lt.SGST)
	assert.True(t, lt.LineTotal.Equal(money("236")))
}

func TestCalculate_LineDiscount(t *testing.T) {
	// 100 x 2 at 50% discount: taxable 100, not 200.
	lines := []Line{
		{Price: money("100"), Quantity: 2, Discount: money("50"), GSTRate: money("18"), HSNCode: "8471"},
	}

	t.Run("intrastate", func(t *testing.T) {
		s := Calculate("Karnataka", "Karnataka", lines)

		lt := s.Lines[0]
		assert.True(t, lt.TaxableAmount.Equal(money("100")), "taxable: %s", lt.TaxableAmount)
		assert.True(t, lt.CGST.Equal(money("9")))
		assert.True(t, lt.SGST.Equal(money("9")))
		assert.True(t, lt.LineTotal.Equal(money("118")))
		assert.True(t, s.GrandTotal.Equal(money("118")))
	})

	t.Run("interstate", func(t *testing.T) {
		s := Calculate("Karnataka", "Maharashtra", lines)

		lt := s.Lines[0]
		assert.True(t, lt.TaxableAmount.Equal(money("100")))
		assert.True(t, lt.IGST.Equal(money("18")))
		assert.True(t, s.GrandTotal.Equal(money("118")))
	})
}

func TestCalculate_HSNGrouping(t *testing.T) {
	lines := []Line{
		{Price: money("100"), Quantity: 1, GSTRate: money("18"), HSNCode: "8471"},
		{Price: money("50"), Quantity: 2, GSTRate: money("12"), HSNCode: "3004"},
		{Price: money("200"), Quantity: 1, GSTRate: money("18"), HSNCode: "8471"},
	}

	s := Calculate("Karnataka", "Maharashtra", lines)

	require.Len(t, s.Groups, 2)

	// Groups come out in first-seen order
	assert.Equal(t, "8471", s.Groups[0].HSNCode)
	assert.Equal(t, "3004", s.Groups[1].HSNCode)

	assert.True(t, s.Groups[0].TaxableAmount.Equal(money("300")))
	assert.True(t, s.Groups[0].IGST.Equal(money("54")))
	assert.True(t, s.Groups[1].TaxableAmount.Equal(money("100")))
	assert.True(t, s.Groups[1].IGST.Equal(money("12")))
}

func TestCalculate_SplitSumsToGrandTotal(t *testing.T) {
	// Odd rate so the halves carry fractional paise
	lines := []Line{
		{Price: money("99.99"), Quantity: 3, GSTRate: money("5"), HSNCode: "1001"},
		{Price: money("7.49"), Quantity: 7, GSTRate: money("28"), HSNCode: "2202"},
	}

	for _, customerState := range []string{"Karnataka", "Kerala"} {
		s := Calculate("Karnataka", customerState, lines)

		sum := s.TaxableAmount.Add(s.TotalTax)
		diff := sum.Sub(s.GrandTotal).Abs()
		assert.True(t, diff.LessThanOrEqual(types.MoneyTolerance),
			"taxable+tax=%s grand=%s", sum, s.GrandTotal)
	}
}

func TestCalculate_ZeroRate(t *testing.T) {
	lines := []Line{
		{Price: money("100"), Quantity: 1, GSTRate: decimal.Zero, HSNCode: ""},
	}

	s := Calculate("Karnataka", "Kerala", lines)

	assert.True(t, s.TotalTax.IsZero())
	assert.True(t, s.GrandTotal.Equal(money("100")))
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate("Karnataka", "Kerala", nil)

	assert.Empty(t, s.Lines)
	assert.Empty(t, s.Groups)
	assert.True(t, s.GrandTotal.IsZero())
}
