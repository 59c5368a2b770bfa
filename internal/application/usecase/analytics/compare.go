package analytics

import (
	"github.com/shopspring/decimal"
)

// PercentChange returns the percentage delta from previous to current,
// unrounded. A zero baseline yields 0 rather than a division error or an
// "infinite increase" signal. The denominator uses the absolute value of the
// baseline so a swing from a negative balance keeps an intuitive sign: an
// increase in the signed value reads as a positive percentage.
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	change := current.Sub(previous).
		Mul(decimal.NewFromInt(100)).
		Div(previous.Abs())
	return change.InexactFloat64()
}
