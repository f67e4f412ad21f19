package simulation

// Area names one of the fixed localities tracked by the model.
type Area string

// The tracked areas, in display order.
const (
	Miyapur    Area = "Miyapur"
	Kondapur   Area = "Kondapur"
	Gachibowli Area = "Gachibowli"
	HitechCity Area = "Hitech City"
)

var areaOrder = []Area{Miyapur, Kondapur, Gachibowli, HitechCity}

// onsetDays holds the day on which each area's infection begins. Miyapur is
// already seeded in the initial state, so its entry never fires under the
// exact policy.
var onsetDays = map[Area]int{
	Miyapur:    1,
	Kondapur:   4,
	Gachibowli: 6,
	HitechCity: 8,
}

// Areas returns the tracked areas in display order.
func Areas() []Area {
	return append([]Area(nil), areaOrder...)
}

// OnsetDay returns the day the area's infection starts. The second return
// value is false for names outside the tracked set.
func (a Area) OnsetDay() (int, bool) {
	day, ok := onsetDays[a]
	return day, ok
}

// Valid reports whether the area is part of the tracked set.
func (a Area) Valid() bool {
	_, ok := onsetDays[a]
	return ok
}

func (a Area) String() string {
	return string(a)
}
