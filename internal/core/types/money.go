// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors in totals,
// tax splits and ledger amounts.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// Prefer NewMoneyFromString for values coming off the wire.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MoneyTolerance is the comparison tolerance for derived totals
// (0.01 currency units).
var MoneyTolerance = decimal.New(1, -2)

// MoneyEqual reports whether two amounts agree within MoneyTolerance.
func MoneyEqual(a, b Money) bool {
	return a.Sub(b).Abs().LessThanOrEqual(MoneyTolerance)
}
