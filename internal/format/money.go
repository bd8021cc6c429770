// Package format renders domain values for display. All rounding of billing
// amounts happens here, never during accumulation.
package format

import "github.com/shopspring/decimal"

// Amount renders a monetary value with two decimal places.
func Amount(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// Hours renders an hour count, trimming trailing zeros ("2.5", "3").
func Hours(v decimal.Decimal) string {
	return v.RoundBank(2).String()
}
