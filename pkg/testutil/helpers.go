// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/internal/forecast"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
)

// FindDay finds a day by number in the results slice.
// Returns a pointer to the day if found, nil otherwise.
func FindDay(days []forecast.Day, day int) *forecast.Day {
	for i := range days {
		if days[i].Day == day {
			return &days[i]
		}
	}
	return nil
}

// FindSample finds the impact sample recorded for the given day.
// Returns a pointer to the sample if found, nil otherwise.
func FindSample(samples []dashboard.ImpactSample, day int) *dashboard.ImpactSample {
	for i := range samples {
		if samples[i].Day == day {
			return &samples[i]
		}
	}
	return nil
}

// AreaCases returns the case count of area in areas, or -1 when the area is
// missing.
func AreaCases(areas []simulation.AreaState, area simulation.Area) int {
	for _, current := range areas {
		if current.Area == area {
			return current.Cases
		}
	}
	return -1
}
