package dashboard

import (
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/iwvelando/outbreak-forecast/pkg/mathutil"
)

// Center is the map center (Hyderabad).
var Center = Coordinates{Lat: 17.3850, Lon: 78.4867}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AreaGeometry places an area on the map.
type AreaGeometry struct {
	Area         simulation.Area `json:"area"`
	Center       Coordinates     `json:"center"`
	RadiusMeters float64         `json:"radiusMeters"`
}

var geometry = []AreaGeometry{
	{Area: simulation.Miyapur, Center: Coordinates{Lat: 17.4937, Lon: 78.3728}, RadiusMeters: 2000},
	{Area: simulation.Kondapur, Center: Coordinates{Lat: 17.4605, Lon: 78.3783}, RadiusMeters: 1800},
	{Area: simulation.Gachibowli, Center: Coordinates{Lat: 17.4401, Lon: 78.3489}, RadiusMeters: 1500},
	{Area: simulation.HitechCity, Center: Coordinates{Lat: 17.4435, Lon: 78.3772}, RadiusMeters: 1700},
}

// Geometry returns the map placement of every tracked area.
func Geometry() []AreaGeometry {
	return append([]AreaGeometry(nil), geometry...)
}

// MapPoint is one overlay circle.
type MapPoint struct {
	AreaGeometry
	Cases     int     `json:"cases"`
	Intensity float64 `json:"intensity"`
}

// Intensity is the overlay fill opacity for an area, growing with its cases
// and the elapsed days and capped at MaxMapIntensity.
func Intensity(cases int, day int) float64 {
	return mathutil.Min(constants.MaxMapIntensity, (float64(cases)/1000)*float64(day)/10)
}

// Overlay builds the map overlay for state. Areas missing from the state are
// drawn with zero cases.
func Overlay(state simulation.State) []MapPoint {
	areas := Geometry()
	points := make([]MapPoint, 0, len(areas))
	for _, geo := range areas {
		point := MapPoint{AreaGeometry: geo}
		if area, ok := state.Lookup(geo.Area); ok {
			point.Cases = area.Cases
			point.Intensity = Intensity(area.Cases, state.Day)
		}
		points = append(points, point)
	}
	return points
}
