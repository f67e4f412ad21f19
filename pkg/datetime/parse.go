// Package datetime provides time-of-day helpers for alert display times.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/outbreak-forecast/pkg/constants"
)

const (
	// ClockLayout is the format expected for alert times in config files and
	// is also the display format.
	ClockLayout = constants.ClockLayout
)

// MustParseClock parses a time of day and panics on error.
// This is intended for use in tests where the value is known to be valid.
func MustParseClock(value string) time.Time {
	t, err := ParseClock(value)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseClock parses a time of day such as "08:30 AM". Surrounding whitespace
// and a lower-case meridiem are accepted.
func ParseClock(value string) (time.Time, error) {
	return time.Parse(ClockLayout, strings.ToUpper(strings.TrimSpace(value)))
}

// NormalizeClock reformats a time of day into the display format, so "8:30 am"
// becomes "08:30 AM". Unparseable values are returned unchanged with the error.
func NormalizeClock(value string) (string, error) {
	t, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(value)))
	if err != nil {
		return value, err
	}
	return t.Format(ClockLayout), nil
}

// ClockBefore returns true if first is strictly earlier in the day than second.
func ClockBefore(first string, second string) (bool, error) {
	firstT, err := ParseClock(first)
	if err != nil {
		return false, err
	}
	secondT, err := ParseClock(second)
	if err != nil {
		return false, err
	}
	return firstT.Before(secondT), nil
}
