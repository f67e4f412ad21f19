// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/outbreak-forecast/pkg/constants"
)

// Round rounds a value to two decimals, the precision used for displayed
// economic loss figures.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundTo rounds a value to the precision given as a power of ten
// (10 for one decimal, 100 for two).
func RoundTo(val float64, precision float64) float64 {
	if precision <= 0 {
		return math.Round(val)
	}
	return math.Round(val*precision) / precision
}

// FloorInt floors a value and converts it to an int, saturating at the int
// range instead of wrapping. NaN floors to zero.
func FloorInt(val float64) int {
	floored := math.Floor(val)
	switch {
	case math.IsNaN(floored):
		return 0
	case floored >= math.MaxInt:
		return math.MaxInt
	case floored <= math.MinInt:
		return math.MinInt
	}
	return int(floored)
}

// Compound applies rate to base the given number of times.
func Compound(base, rate float64, periods int) float64 {
	if periods <= 0 {
		return base
	}
	return base * math.Pow(rate, float64(periods))
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// PercentChange returns the percentage change from previous to current. The
// second return value is false when previous is zero and no change can be
// expressed.
func PercentChange(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous * constants.PercentageMultiplier, true
}
