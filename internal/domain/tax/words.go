package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"krilo/internal/core/types"
)

var (
	onesWords = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensWords = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
		"Eighty", "Ninety",
	}
)

// AmountInWords renders a monetary amount using Indian numbering
// (crore/lakh/thousand grouping), e.g. "One Lakh Twenty Three Thousand
// Rupees and Forty Five Paise Only". Display-only utility.
func AmountInWords(amount types.Money) string {
	if amount.IsNegative() {
		return "Minus " + AmountInWords(amount.Neg())
	}

	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	r := rupees.IntPart()

	var b strings.Builder
	if r == 0 {
		b.WriteString("Zero Rupees")
	} else {
		b.WriteString(strings.TrimSpace(integerInWords(r)))
		b.WriteString(" Rupees")
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(strings.TrimSpace(integerInWords(paise)))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// integerInWords converts n (0 < n < 1e15) into Indian-grouped words.
func integerInWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	appendGroup := func(value int64, label string) {
		if value == 0 {
			return
		}
		word := threeDigits(value)
		if label != "" {
			word += " " + label
		}
		parts = append(parts, word)
	}

	if crore := n / 10000000; crore > 0 {
		// Values of 100 crore and above recurse ("One Hundred Crore")
		parts = append(parts, integerInWords(crore)+" Crore")
	}
	n %= 10000000
	appendGroup(n/100000, "Lakh")
	n %= 100000
	appendGroup(n/1000, "Thousand")
	n %= 1000
	appendGroup(n, "")

	return strings.Join(parts, " ")
}

// threeDigits converts 1..999.
func threeDigits(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n >= 20 {
		if n%10 > 0 {
			parts = append(parts, tensWords[n/10]+" "+onesWords[n%10])
		} else {
			parts = append(parts, tensWords[n/10])
		}
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
