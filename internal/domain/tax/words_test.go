package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"krilo/internal/core/types"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"1", "One Rupees Only"},
		{"15", "Fifteen Rupees Only"},
		{"42", "Forty Two Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"999", "Nine Hundred Ninety Nine Rupees Only"},
		{"1000", "One Thousand Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"123000", "One Lakh Twenty Three Thousand Rupees Only"},
		{"10000000", "One Crore Rupees Only"},
		{"1234567", "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven Rupees Only"},
		{"0.45", "Zero Rupees and Forty Five Paise Only"},
		{"123.45", "One Hundred Twenty Three Rupees and Forty Five Paise Only"},
		{"-10", "Minus Ten Rupees Only"},
		// 100 crore and above keep grouping through recursion
		{"1000000000", "One Hundred Crore Rupees Only"},
		{"12345678901", "One Thousand Two Hundred Thirty Four Crore Fifty Six Lakh Seventy Eight Thousand Nine Hundred One Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(types.MustMoney(tt.amount)))
		})
	}
}
