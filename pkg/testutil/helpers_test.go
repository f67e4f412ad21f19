package testutil

import (
	"testing"

	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/internal/forecast"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
)

func TestFindDay(t *testing.T) {
	days := []forecast.Day{
		{Day: 1},
		{Day: 2},
		{Day: 3},
	}

	tests := []struct {
		name     string
		day      int
		expected bool
	}{
		{"first", 1, true},
		{"middle", 2, true},
		{"last", 3, true},
		{"missing", 4, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindDay(days, tt.day)
			if tt.expected {
				if result == nil {
					t.Fatalf("expected day %d to be found", tt.day)
				}
				if result.Day != tt.day {
					t.Errorf("expected day %d, got %d", tt.day, result.Day)
				}
			} else if result != nil {
				t.Errorf("expected nil for day %d, got %+v", tt.day, result)
			}
		})
	}
}

func TestFindDayNilResults(t *testing.T) {
	if result := FindDay(nil, 1); result != nil {
		t.Errorf("expected nil for nil days, got %+v", result)
	}
}

func TestFindDayReturnsPointer(t *testing.T) {
	days := []forecast.Day{{Day: 1}}

	result := FindDay(days, 1)
	if result == nil {
		t.Fatal("expected day to be found")
	}
	result.Summary.TotalCases = 42

	if days[0].Summary.TotalCases != 42 {
		t.Errorf("expected pointer into the original slice")
	}
}

func TestFindSample(t *testing.T) {
	samples := []dashboard.ImpactSample{
		{Day: 1, ActualCases: 10},
		{Day: 2, ActualCases: 18},
	}

	if result := FindSample(samples, 2); result == nil || result.ActualCases != 18 {
		t.Errorf("expected sample for day 2, got %+v", result)
	}
	if result := FindSample(samples, 5); result != nil {
		t.Errorf("expected nil for missing day, got %+v", result)
	}
	if result := FindSample(nil, 1); result != nil {
		t.Errorf("expected nil for nil samples, got %+v", result)
	}
}

func TestAreaCases(t *testing.T) {
	areas := simulation.InitialState().Areas

	tests := []struct {
		area     simulation.Area
		expected int
	}{
		{simulation.Miyapur, 10},
		{simulation.Kondapur, 0},
		{simulation.Area("Secunderabad"), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.area), func(t *testing.T) {
			if got := AreaCases(areas, tt.area); got != tt.expected {
				t.Errorf("AreaCases(%s) = %d, want %d", tt.area, got, tt.expected)
			}
		})
	}
}
