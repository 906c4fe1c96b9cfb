package models

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Fraction returns part/whole, or zero when whole is zero.
func Fraction(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole)
}

// Percent returns part as a percentage of whole rounded to two places.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	return Fraction(part, whole).Mul(hundred).Round(2)
}
