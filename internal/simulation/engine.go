// Package simulation holds the day-stepped outbreak model: the initial
// snapshot, the per-area onset and growth policies, the single-step
// transition and the growth-based predictions attached to it.
package simulation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/iwvelando/outbreak-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// OnsetPolicy decides when an uninfected area gets seeded.
type OnsetPolicy int

const (
	// OnsetExact seeds an area only on the step whose pre-increment day
	// equals its onset day.
	OnsetExact OnsetPolicy = iota
	// OnsetCatchUp seeds an uninfected area on any step at or after its
	// onset day, so a skipped day cannot suppress the onset.
	OnsetCatchUp
)

// ParseOnsetPolicy converts a configuration value into an OnsetPolicy. An
// empty value selects OnsetExact.
func ParseOnsetPolicy(value string) (OnsetPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.OnsetPolicyExact:
		return OnsetExact, nil
	case constants.OnsetPolicyCatchUp:
		return OnsetCatchUp, nil
	default:
		return OnsetExact, fmt.Errorf("invalid onset policy %q, expected %s or %s",
			value, constants.OnsetPolicyExact, constants.OnsetPolicyCatchUp)
	}
}

func (p OnsetPolicy) String() string {
	if p == OnsetCatchUp {
		return constants.OnsetPolicyCatchUp
	}
	return constants.OnsetPolicyExact
}

// Transition is the result of one step: the advanced snapshot plus the
// predictions computed from the snapshot it was advanced from.
type Transition struct {
	State
	PredictedCases        int     `json:"predictedCases"`
	PredictedEconomicLoss float64 `json:"predictedEconomicLoss"`
}

// Engine applies the onset and growth policies. It holds no simulation
// state; every call to Step is a pure function of its input.
type Engine struct {
	logger *zap.Logger
	policy OnsetPolicy
}

// NewEngine creates an engine with the given onset policy.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger, policy OnsetPolicy) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, policy: policy}
}

// Policy returns the engine's onset policy.
func (e *Engine) Policy() OnsetPolicy {
	return e.policy
}

var defaultEngine = NewEngine(nil, OnsetExact)

// Step advances the state by one day using the exact onset policy.
func Step(state State) Transition {
	return defaultEngine.Step(state)
}

// Step produces the next snapshot. The input is never modified.
func (e *Engine) Step(state State) Transition {
	next := State{
		Day:   state.Day + 1,
		Areas: make([]AreaState, len(state.Areas)),
	}
	for i, area := range state.Areas {
		next.Areas[i] = e.advanceArea(area, state.Day)
	}

	return Transition{
		State:                 next,
		PredictedCases:        PredictCases(state),
		PredictedEconomicLoss: PredictLoss(state),
	}
}

func (e *Engine) advanceArea(area AreaState, day int) AreaState {
	if area.Cases > 0 {
		return AreaState{
			Area:         area.Area,
			Cases:        mathutil.FloorInt(float64(area.Cases) * constants.CaseGrowthRate),
			EconomicLoss: area.EconomicLoss * constants.LossGrowthRate,
		}
	}

	if e.shouldStartInfection(area.Area, day) {
		e.logger.Debug("infection onset",
			zap.String("op", "simulation.Step"),
			zap.String("area", area.Area.String()),
			zap.Int("day", day),
		)
		return AreaState{
			Area:         area.Area,
			Cases:        constants.OnsetCases,
			EconomicLoss: constants.OnsetEconomicLoss,
		}
	}

	return AreaState{Area: area.Area}
}

func (e *Engine) shouldStartInfection(area Area, day int) bool {
	onset, ok := area.OnsetDay()
	if !ok {
		return false
	}
	if e.policy == OnsetCatchUp {
		return day >= onset
	}
	return day == onset
}

// PredictCases projects total cases over the prediction horizon, compounding
// the case growth rate without per-day flooring and flooring the result.
func PredictCases(state State) int {
	projected := mathutil.Compound(float64(state.TotalCases()), constants.CaseGrowthRate, constants.PredictionHorizonDays)
	return mathutil.FloorInt(projected)
}

// PredictLoss projects total economic loss over the prediction horizon and
// rounds the result to two decimals.
func PredictLoss(state State) float64 {
	projected := mathutil.Compound(state.TotalEconomicLoss(), constants.LossGrowthRate, constants.PredictionHorizonDays)
	return mathutil.Round(projected)
}
