package simulation

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func stepN(engine *Engine, state State, n int) State {
	for i := 0; i < n; i++ {
		state = engine.Step(state).State
	}
	return state
}

func TestInitialState(t *testing.T) {
	state := InitialState()

	if state.Day != 1 {
		t.Fatalf("InitialState().Day = %d, expected 1", state.Day)
	}
	if len(state.Areas) != 4 {
		t.Fatalf("expected 4 areas, got %d", len(state.Areas))
	}

	expected := []AreaState{
		{Area: Miyapur, Cases: 10, EconomicLoss: 0.1},
		{Area: Kondapur},
		{Area: Gachibowli},
		{Area: HitechCity},
	}
	for i, want := range expected {
		if state.Areas[i] != want {
			t.Errorf("area %d = %+v, expected %+v", i, state.Areas[i], want)
		}
	}
}

func TestInitialStateIsFreshCopy(t *testing.T) {
	first := InitialState()
	first.Areas[0].Cases = 999
	first.Day = 7

	second := InitialState()
	if second.Areas[0].Cases != 10 || second.Day != 1 {
		t.Fatalf("mutating one initial state leaked into another: %+v", second)
	}
}

func TestStepIsPure(t *testing.T) {
	state := stepN(defaultEngine, InitialState(), 5)
	before := state.Clone()

	first := Step(state)
	second := Step(state)

	if !first.State.Equal(second.State) {
		t.Fatalf("Step() returned different states for the same input: %+v vs %+v", first.State, second.State)
	}
	if first.PredictedCases != second.PredictedCases || first.PredictedEconomicLoss != second.PredictedEconomicLoss {
		t.Fatalf("Step() returned different predictions for the same input")
	}
	if !state.Equal(before) {
		t.Fatalf("Step() mutated its input: %+v, expected %+v", state, before)
	}
}

func TestStepAdvancesDay(t *testing.T) {
	for _, day := range []int{1, 2, 7, 14, 15, 100} {
		state := InitialState()
		state.Day = day
		if got := Step(state).Day; got != day+1 {
			t.Errorf("Step(day %d).Day = %d, expected %d", day, got, day+1)
		}
	}
}

func TestStepFromInitialState(t *testing.T) {
	next := Step(InitialState())

	miyapur, _ := next.Lookup(Miyapur)
	if miyapur.Cases != 18 {
		t.Errorf("Miyapur cases = %d, expected 18", miyapur.Cases)
	}
	if math.Abs(miyapur.EconomicLoss-0.17) > 1e-12 {
		t.Errorf("Miyapur economic loss = %v, expected 0.17", miyapur.EconomicLoss)
	}

	for _, area := range []Area{Kondapur, Gachibowli, HitechCity} {
		got, ok := next.Lookup(area)
		if !ok {
			t.Fatalf("area %s missing after step", area)
		}
		if got.Cases != 0 || got.EconomicLoss != 0 {
			t.Errorf("%s = %+v, expected no cases", area, got)
		}
	}
}

func TestOnsetOnExactDay(t *testing.T) {
	tests := []struct {
		name  string
		area  Area
		onset int
	}{
		{"Kondapur", Kondapur, 4},
		{"Gachibowli", Gachibowli, 6},
		{"Hitech City", HitechCity, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for day := 1; day <= 15; day++ {
				state := State{Day: day, Areas: []AreaState{{Area: tt.area}}}
				got := Step(state).Areas[0]

				if day == tt.onset {
					if got.Cases != 10 || got.EconomicLoss != 0.1 {
						t.Errorf("day %d: %+v, expected onset {10, 0.1}", day, got)
					}
					continue
				}
				if got.Cases != 0 || got.EconomicLoss != 0 {
					t.Errorf("day %d: %+v, expected no onset", day, got)
				}
			}
		})
	}
}

func TestKondapurOnsetTiming(t *testing.T) {
	dayThree := stepN(defaultEngine, InitialState(), 2)
	if dayThree.Day != 3 {
		t.Fatalf("expected day 3, got %d", dayThree.Day)
	}
	if kondapur, _ := dayThree.Lookup(Kondapur); kondapur.Cases != 0 {
		t.Fatalf("Kondapur infected before onset: %+v", kondapur)
	}

	dayFour := Step(dayThree).State
	kondapur, _ := dayFour.Lookup(Kondapur)
	if kondapur.Cases != 0 {
		t.Fatalf("Kondapur seeded on the step into day 4 from day 3: %+v", kondapur)
	}

	dayFive := Step(dayFour).State
	kondapur, _ = dayFive.Lookup(Kondapur)
	if kondapur.Cases != 10 || kondapur.EconomicLoss != 0.1 {
		t.Fatalf("Kondapur = %+v after the step from day 4, expected {10, 0.1}", kondapur)
	}
}

func TestGrowth(t *testing.T) {
	tests := []struct {
		name         string
		cases        int
		loss         float64
		expectedCase int
	}{
		{"Seeded area", 10, 0.1, 18},
		{"Floor drops fraction", 18, 0.17, 32},
		{"Larger count", 57, 1.0, 102},
		{"Single case", 1, 0.01, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := State{Day: 9, Areas: []AreaState{{Area: Kondapur, Cases: tt.cases, EconomicLoss: tt.loss}}}
			got := Step(state).Areas[0]

			if got.Cases != tt.expectedCase {
				t.Errorf("cases = %d, expected %d", got.Cases, tt.expectedCase)
			}
			if got.EconomicLoss != tt.loss*1.7 {
				t.Errorf("economic loss = %v, expected unrounded %v", got.EconomicLoss, tt.loss*1.7)
			}
		})
	}
}

func TestGrowthIsMonotonic(t *testing.T) {
	state := InitialState()
	for state.Day < 15 {
		next := Step(state).State
		for i := range next.Areas {
			if next.Areas[i].Cases < state.Areas[i].Cases {
				t.Fatalf("day %d: %s cases fell from %d to %d", next.Day, next.Areas[i].Area, state.Areas[i].Cases, next.Areas[i].Cases)
			}
			if next.Areas[i].EconomicLoss < state.Areas[i].EconomicLoss {
				t.Fatalf("day %d: %s loss fell", next.Day, next.Areas[i].Area)
			}
		}
		state = next
	}
}

func TestGrowthSaturatesInsteadOfWrapping(t *testing.T) {
	state := State{Day: 90, Areas: []AreaState{
		{Area: Miyapur, Cases: math.MaxInt - 1, EconomicLoss: 1e15},
		{Area: Kondapur, Cases: math.MaxInt / 2, EconomicLoss: 1e14},
		{Area: Gachibowli},
		{Area: HitechCity},
	}}

	next := Step(state).State
	for i := range next.Areas {
		if next.Areas[i].Cases < state.Areas[i].Cases {
			t.Fatalf("%s cases fell from %d to %d", next.Areas[i].Area, state.Areas[i].Cases, next.Areas[i].Cases)
		}
	}
	if next.Areas[0].Cases != math.MaxInt {
		t.Errorf("Miyapur cases = %d, expected saturation at %d", next.Areas[0].Cases, math.MaxInt)
	}
	if again := Step(next).State; again.Areas[0].Cases != math.MaxInt {
		t.Errorf("saturated area changed to %d", again.Areas[0].Cases)
	}
}

func TestAreaOrderIsStable(t *testing.T) {
	state := stepN(defaultEngine, InitialState(), 14)
	for i, area := range Areas() {
		if state.Areas[i].Area != area {
			t.Errorf("area %d = %s, expected %s", i, state.Areas[i].Area, area)
		}
	}
}

func TestPredictCases(t *testing.T) {
	if got := PredictCases(InitialState()); got != 612 {
		t.Fatalf("PredictCases(InitialState()) = %d, expected 612", got)
	}

	state := State{Day: 5, Areas: []AreaState{
		{Area: Miyapur, Cases: 57},
		{Area: Kondapur, Cases: 10},
	}}
	expected := int(math.Floor(67 * math.Pow(1.8, 7)))
	if got := PredictCases(state); got != expected {
		t.Fatalf("PredictCases() = %d, expected %d", got, expected)
	}

	if got := PredictCases(State{Day: 1}); got != 0 {
		t.Fatalf("PredictCases(empty) = %d, expected 0", got)
	}
}

func TestPredictLoss(t *testing.T) {
	if got := PredictLoss(InitialState()); got != 4.1 {
		t.Fatalf("PredictLoss(InitialState()) = %v, expected 4.1", got)
	}

	state := State{Day: 3, Areas: []AreaState{{Area: Miyapur, Cases: 32, EconomicLoss: 0.289}}}
	expected := math.Round(0.289*math.Pow(1.7, 7)*100) / 100
	if got := PredictLoss(state); got != expected {
		t.Fatalf("PredictLoss() = %v, expected %v", got, expected)
	}
}

func TestStepPredictionsUsePreStepState(t *testing.T) {
	state := stepN(defaultEngine, InitialState(), 3)
	transition := Step(state)

	if transition.PredictedCases != PredictCases(state) {
		t.Errorf("PredictedCases = %d, expected %d from the pre-step state", transition.PredictedCases, PredictCases(state))
	}
	if transition.PredictedEconomicLoss != PredictLoss(state) {
		t.Errorf("PredictedEconomicLoss = %v, expected %v from the pre-step state", transition.PredictedEconomicLoss, PredictLoss(state))
	}
	if transition.PredictedCases == PredictCases(transition.State) {
		t.Errorf("predictions should not be computed from the advanced state")
	}
}

func TestCatchUpPolicy(t *testing.T) {
	engine := NewEngine(zap.NewNop(), OnsetCatchUp)

	// Day 5 skips Kondapur's exact onset day.
	state := State{Day: 5, Areas: []AreaState{{Area: Kondapur}, {Area: HitechCity}}}
	next := engine.Step(state)

	if next.Areas[0].Cases != 10 || next.Areas[0].EconomicLoss != 0.1 {
		t.Errorf("Kondapur = %+v, expected catch-up onset", next.Areas[0])
	}
	if next.Areas[1].Cases != 0 {
		t.Errorf("Hitech City = %+v, expected no onset before day 8", next.Areas[1])
	}

	exact := Step(state)
	if exact.Areas[0].Cases != 0 {
		t.Errorf("exact policy seeded Kondapur on day 5: %+v", exact.Areas[0])
	}
}

func TestCatchUpMatchesExactOnUnbrokenRun(t *testing.T) {
	catchUp := NewEngine(nil, OnsetCatchUp)
	exact := stepN(defaultEngine, InitialState(), 14)
	other := stepN(catchUp, InitialState(), 14)

	if !exact.Equal(other) {
		t.Fatalf("policies diverged on an unbroken run: %+v vs %+v", exact, other)
	}
}

func TestUnknownAreaNeverStarts(t *testing.T) {
	engine := NewEngine(nil, OnsetCatchUp)
	state := State{Day: 20, Areas: []AreaState{{Area: Area("Secunderabad")}}}
	if got := engine.Step(state).Areas[0]; got.Cases != 0 {
		t.Fatalf("unknown area was seeded: %+v", got)
	}
}

func TestParseOnsetPolicy(t *testing.T) {
	tests := []struct {
		input     string
		expected  OnsetPolicy
		wantError bool
	}{
		{"", OnsetExact, false},
		{"exact", OnsetExact, false},
		{" Catch-Up ", OnsetCatchUp, false},
		{"eventually", OnsetExact, true},
	}

	for _, tt := range tests {
		got, err := ParseOnsetPolicy(tt.input)
		if tt.wantError {
			if err == nil {
				t.Errorf("ParseOnsetPolicy(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOnsetPolicy(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseOnsetPolicy(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestStateAggregates(t *testing.T) {
	state := State{Day: 6, Areas: []AreaState{
		{Area: Miyapur, Cases: 102, EconomicLoss: 0.8352},
		{Area: Kondapur, Cases: 18, EconomicLoss: 0.17},
		{Area: Gachibowli},
		{Area: HitechCity},
	}}

	if got := state.TotalCases(); got != 120 {
		t.Errorf("TotalCases() = %d, expected 120", got)
	}
	if got := state.TotalEconomicLoss(); math.Abs(got-1.0052) > 1e-12 {
		t.Errorf("TotalEconomicLoss() = %v, expected 1.0052", got)
	}
	if got := state.AffectedAreas(); got != 2 {
		t.Errorf("AffectedAreas() = %d, expected 2", got)
	}
	if _, ok := state.Lookup(Area("Nowhere")); ok {
		t.Errorf("Lookup() found an unknown area")
	}
}
