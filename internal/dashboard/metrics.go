package dashboard

import (
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/iwvelando/outbreak-forecast/pkg/mathutil"
)

// Summary holds the metric card figures for one snapshot. Trends are nil
// when no comparison is available.
type Summary struct {
	TotalCases        int      `json:"totalCases"`
	TotalEconomicLoss float64  `json:"totalEconomicLoss"`
	AffectedAreas     int      `json:"affectedAreas"`
	PopulationAtRisk  int      `json:"populationAtRisk"`
	CaseTrend         *float64 `json:"caseTrend,omitempty"`
	LossTrend         *float64 `json:"lossTrend,omitempty"`
}

// Summarize computes the metric cards for state. Trends compare against the
// second-to-last impact sample and need at least two samples.
func Summarize(state simulation.State, samples []ImpactSample) Summary {
	totalCases := state.TotalCases()
	totalLoss := state.TotalEconomicLoss()

	summary := Summary{
		TotalCases:        totalCases,
		TotalEconomicLoss: totalLoss,
		AffectedAreas:     state.AffectedAreas(),
		PopulationAtRisk:  PopulationAtRisk(totalCases),
	}

	if len(samples) > 1 {
		previous := samples[len(samples)-2]
		if trend, ok := Trend(float64(totalCases), float64(previous.ActualCases)); ok {
			summary.CaseTrend = &trend
		}
		if trend, ok := Trend(totalLoss, previous.ActualEconomicLoss); ok {
			summary.LossTrend = &trend
		}
	}

	return summary
}

// PopulationAtRisk estimates how many people the active cases expose.
func PopulationAtRisk(totalCases int) int {
	return totalCases * constants.PopulationAtRiskPerCase
}

// Trend returns the percentage change from previous to current rounded to one
// decimal. A zero previous value yields no trend rather than an invalid number.
func Trend(current, previous float64) (float64, bool) {
	change, ok := mathutil.PercentChange(current, previous)
	if !ok {
		return 0, false
	}
	return mathutil.RoundTo(change, constants.TrendPrecision), true
}
