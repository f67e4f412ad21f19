// Package format renders dashboard figures for display.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count returns an integer with thousands separators (e.g., "36,216").
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Lakhs returns an economic loss in lakhs with a rupee sign and one decimal
// (e.g., "₹12.3L", "-₹0.5L").
func Lakhs(amount float64) string {
	formatted := printer.Sprintf("%.1f", math.Abs(amount))
	if amount < 0 && formatted != "0.0" {
		return "-₹" + formatted + "L"
	}
	return "₹" + formatted + "L"
}

// Percent returns a signed percentage with one decimal (e.g., "+80.0%").
func Percent(value float64) string {
	return fmt.Sprintf("%+.1f%%", value)
}

// Trend renders an optional trend, or "n/a" when none is available.
func Trend(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return Percent(*value)
}
