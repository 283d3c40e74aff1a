// Package tax computes the GST split for invoice lines and aggregates
// the HSN-wise summary used in the printed tax breakup.
package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"krilo/internal/core/types"
)

var hundred = decimal.NewFromInt(100)

// Line is one invoice line as seen by the calculator.
// Discount is a percentage (0-100) applied to price*quantity before tax.
type Line struct {
	Price    types.Money
	Quantity int64
	Discount types.Money
	GSTRate  types.Money
	HSNCode  string
}

// LineTax is the computed split for a single line.
// Exactly one of IGST or CGST+SGST is non-zero, depending on whether
// the sale crosses state lines.
type LineTax struct {
	TaxableAmount types.Money `json:"taxableAmount"`
	IGST          types.Money `json:"igst"`
	CGST          types.Money `json:"cgst"`
	SGST          types.Money `json:"sgst"`
	LineTotal     types.Money `json:"lineTotal"`
}

// HSNGroup aggregates lines sharing one HSN code.
type HSNGroup struct {
	HSNCode       string      `json:"hsnCode"`
	TaxableAmount types.Money `json:"taxableAmount"`
	IGST          types.Money `json:"igst"`
	CGST          types.Money `json:"cgst"`
	SGST          types.Money `json:"sgst"`
	Total         types.Money `json:"total"`
}

// Summary is the full tax breakup for an invoice.
type Summary struct {
	InterState bool       `json:"interState"`
	Lines      []LineTax  `json:"lines"`
	Groups     []HSNGroup `json:"groups"`

	TaxableAmount types.Money `json:"taxableAmount"`
	TotalTax      types.Money `json:"totalTax"`
	GrandTotal    types.Money `json:"grandTotal"`
}

// IsInterState compares seller and buyer states case-insensitively.
// Two empty states compare equal and are treated as intrastate.
func IsInterState(companyState, customerState string) bool {
	return !strings.EqualFold(strings.TrimSpace(companyState), strings.TrimSpace(customerState))
}

// Calculate computes the per-line split and the HSN-wise summary.
// Lines with an empty HSN code are grouped under the empty key.
func Calculate(companyState, customerState string, lines []Line) Summary {
	s := Summary{
		InterState:    IsInterState(companyState, customerState),
		Lines:         make([]LineTax, 0, len(lines)),
		TaxableAmount: decimal.Zero,
		TotalTax:      decimal.Zero,
		GrandTotal:    decimal.Zero,
	}

	groups := make(map[string]*HSNGroup)
	order := make([]string, 0)

	for _, line := range lines {
		lt := calcLine(line, s.InterState)
		s.Lines = append(s.Lines, lt)

		g, ok := groups[line.HSNCode]
		if !ok {
			g = &HSNGroup{
				HSNCode:       line.HSNCode,
				TaxableAmount: decimal.Zero,
				IGST:          decimal.Zero,
				CGST:          decimal.Zero,
				SGST:          decimal.Zero,
				Total:         decimal.Zero,
			}
			groups[line.HSNCode] = g
			order = append(order, line.HSNCode)
		}
		g.TaxableAmount = g.TaxableAmount.Add(lt.TaxableAmount)
		g.IGST = g.IGST.Add(lt.IGST)
		g.CGST = g.CGST.Add(lt.CGST)
		g.SGST = g.SGST.Add(lt.SGST)
		g.Total = g.Total.Add(lt.LineTotal)

		s.TaxableAmount = s.TaxableAmount.Add(lt.TaxableAmount)
		tax := lt.IGST.Add(lt.CGST).Add(lt.SGST)
		s.TotalTax = s.TotalTax.Add(tax)
		s.GrandTotal = s.GrandTotal.Add(lt.LineTotal)
	}

	// First-seen order keeps the breakup stable across re-renders
	for _, code := range order {
		s.Groups = append(s.Groups, *groups[code])
	}

	return s
}

func calcLine(line Line, interState bool) LineTax {
	taxable := line.Price.Mul(decimal.NewFromInt(line.Quantity))
	if line.Discount.IsPositive() {
		taxable = taxable.Sub(taxable.Mul(line.Discount).Div(hundred))
	}
	lt := LineTax{
		TaxableAmount: taxable,
		IGST:          decimal.Zero,
		CGST:          decimal.Zero,
		SGST:          decimal.Zero,
	}

	if interState {
		lt.IGST = taxable.Mul(line.GSTRate).Div(hundred)
		lt.LineTotal = taxable.Add(lt.IGST)
		return lt
	}

	half := taxable.Mul(line.GSTRate).Div(hundred.Mul(decimal.NewFromInt(2)))
	lt.CGST = half
	lt.SGST = half
	lt.LineTotal = taxable.Add(lt.CGST).Add(lt.SGST)
	return lt
}
