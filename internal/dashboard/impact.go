// Package dashboard derives the display figures the dashboard renders from
// simulation snapshots: impact samples, metric cards, trends and the map
// overlay. Nothing here feeds back into the model.
package dashboard

import (
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
)

// ImpactSample pairs actual against predicted figures for one simulated day.
type ImpactSample struct {
	Day                   int     `json:"day"`
	ActualCases           int     `json:"actualCases"`
	PredictedCases        int     `json:"predictedCases"`
	ActualEconomicLoss    float64 `json:"actualEconomicLoss"`
	PredictedEconomicLoss float64 `json:"predictedEconomicLoss"`
}

// NewImpactSample records the totals of the snapshot a transition was
// computed from, alongside the transition's predictions.
func NewImpactSample(from simulation.State, transition simulation.Transition) ImpactSample {
	return ImpactSample{
		Day:                   from.Day,
		ActualCases:           from.TotalCases(),
		PredictedCases:        transition.PredictedCases,
		ActualEconomicLoss:    from.TotalEconomicLoss(),
		PredictedEconomicLoss: transition.PredictedEconomicLoss,
	}
}

// ImpactSummary is the closing comparison shown once a run completes.
type ImpactSummary struct {
	CasesPrevented  int     `json:"casesPrevented"`
	EconomicSavings float64 `json:"economicSavings"`
}

// SummarizeImpact compares actual and predicted figures of the latest
// sample. With no samples the summary is zero.
func SummarizeImpact(samples []ImpactSample) ImpactSummary {
	if len(samples) == 0 {
		return ImpactSummary{}
	}
	latest := samples[len(samples)-1]
	return ImpactSummary{
		CasesPrevented:  latest.ActualCases - latest.PredictedCases,
		EconomicSavings: latest.ActualEconomicLoss - latest.PredictedEconomicLoss,
	}
}
