package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Progress returns percent of target saved, clamped to [0, 100] and rounded to 2 places,
// and the remaining amount, never negative.
func Progress(current, target decimal.Decimal) (percent, remaining decimal.Decimal) {
	remaining = decimal.Max(decimal.Zero, target.Sub(current))

	if !target.IsPositive() {
		return decimal.Zero, remaining
	}

	percent = current.Mul(hundred).DivRound(target, 2)
	percent = decimal.Min(hundred, decimal.Max(decimal.Zero, percent))

	return percent, remaining
}
