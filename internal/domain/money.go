package domain

import (
	"fmt"
	"math"
)

// Money is a fixed-point monetary amount in minor units (two implied
// decimal places). All fare and ledger arithmetic uses Money; floating
// point never touches a stored amount.
type Money int64

// MoneyFromFloat converts a major-unit float to Money, rounding half
// away from zero.
func MoneyFromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

// MulFloat scales the amount by a float factor (distance, multiplier),
// rounding half away from zero.
func (m Money) MulFloat(f float64) Money {
	return Money(math.Round(float64(m) * f))
}

// Percent returns rate% of the amount.
func (m Money) Percent(rate float64) Money {
	return m.MulFloat(rate / 100)
}

// Float64 returns the amount in major units.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MaxMoney returns the larger of two amounts.
func MaxMoney(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}
