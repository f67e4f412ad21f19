package simulation

import (
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
)

// AreaState holds the case count and cumulative economic loss of one area.
type AreaState struct {
	Area         Area    `json:"area" yaml:"area"`
	Cases        int     `json:"cases" yaml:"cases"`
	EconomicLoss float64 `json:"economicLoss" yaml:"economicLoss"` // lakhs
}

// Infected reports whether the area has any active cases.
func (a AreaState) Infected() bool {
	return a.Cases > 0
}

// State is one day-indexed snapshot of every tracked area.
type State struct {
	Day   int         `json:"day" yaml:"day"`
	Areas []AreaState `json:"areas" yaml:"areas"`
}

// InitialState returns a fresh copy of the day 1 snapshot: an index outbreak
// already detected in Miyapur and every other area clean.
func InitialState() State {
	areas := make([]AreaState, 0, len(areaOrder))
	for _, area := range areaOrder {
		areas = append(areas, AreaState{Area: area})
	}
	areas[0].Cases = constants.OnsetCases
	areas[0].EconomicLoss = constants.OnsetEconomicLoss

	return State{Day: constants.InitialDay, Areas: areas}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return State{
		Day:   s.Day,
		Areas: append([]AreaState(nil), s.Areas...),
	}
}

// Equal reports whether two states hold exactly the same values.
func (s State) Equal(other State) bool {
	if s.Day != other.Day || len(s.Areas) != len(other.Areas) {
		return false
	}
	for i := range s.Areas {
		if s.Areas[i] != other.Areas[i] {
			return false
		}
	}
	return true
}

// TotalCases sums active cases over all areas.
func (s State) TotalCases() int {
	total := 0
	for _, area := range s.Areas {
		total += area.Cases
	}
	return total
}

// TotalEconomicLoss sums economic loss over all areas.
func (s State) TotalEconomicLoss() float64 {
	total := 0.0
	for _, area := range s.Areas {
		total += area.EconomicLoss
	}
	return total
}

// AffectedAreas counts the areas with active cases.
func (s State) AffectedAreas() int {
	count := 0
	for _, area := range s.Areas {
		if area.Infected() {
			count++
		}
	}
	return count
}

// Lookup returns the state of the named area.
func (s State) Lookup(name Area) (AreaState, bool) {
	for _, area := range s.Areas {
		if area.Area == name {
			return area, true
		}
	}
	return AreaState{}, false
}
