// Package money holds the rounding rules shared by the solar calculators.
// All rounding is half away from zero.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds to a whole currency unit.
func Round(v float64) float64 {
	return RoundTo(v, 0)
}

// Round1 rounds to one decimal place (payback years).
func Round1(v float64) float64 {
	return RoundTo(v, 1)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Mul multiplies exactly in decimal before rounding to whole units, so that
// 3 * 45000.1 does not pick up binary representation error.
func Mul(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(0).Float64()
	return f
}

// Div divides a by b and rounds to places. ok is false when b is zero.
func Div(a, b float64, places int32) (q float64, ok bool) {
	if b == 0 {
		return 0, false
	}
	f, _ := decimal.NewFromFloat(a).DivRound(decimal.NewFromFloat(b), places+4).Round(places).Float64()
	return f, true
}
