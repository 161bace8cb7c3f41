// Package analysis implements the budget analysis engine: performance
// metrics, spending velocity, suggestion generation, auto-adjustment
// decisions and anomaly detection. Every function is pure and takes the
// current time as an explicit parameter so results are deterministic for a
// fixed clock.
package analysis

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// safeDiv divides a by b, returning zero when b is zero. decimal.Div
// panics on a zero divisor, so every division in this package goes
// through here.
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// sumAmounts returns the total of the given amounts.
func sumAmounts(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// meanAmount returns the arithmetic mean of the given amounts, or zero for
// an empty slice.
func meanAmount(amounts []decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	return sumAmounts(amounts).Div(decimal.NewFromInt(int64(len(amounts))))
}

// daysBetween returns the fractional number of days from one instant to
// another. Negative when to precedes from.
func daysBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromFloat(to.Sub(from).Hours() / 24)
}

// atLeastOne clamps d to a minimum of one. Used for elapsed-day
// denominators so a period that just started still yields a finite rate.
func atLeastOne(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(one) {
		return one
	}
	return d
}
