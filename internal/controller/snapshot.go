package controller

import (
	"github.com/iwvelando/outbreak-forecast/internal/alerts"
	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
)

// Snapshot is a point-in-time copy of the controller, safe to hand to any
// presentation layer. Version increases with every change, so consumers can
// drop snapshots that arrive out of order.
type Snapshot struct {
	RunID         string                   `json:"runId"`
	Version       uint64                   `json:"version"`
	Day           int                      `json:"day"`
	MaxDay        int                      `json:"maxDay"`
	Playing       bool                     `json:"playing"`
	Speed         float64                  `json:"speed"`
	Completed     bool                     `json:"completed"`
	Areas         []simulation.AreaState   `json:"areas"`
	Alerts        []alerts.Alert           `json:"alerts"`
	Impact        []dashboard.ImpactSample `json:"impact"`
	Summary       dashboard.Summary        `json:"summary"`
	ImpactSummary *dashboard.ImpactSummary `json:"impactSummary,omitempty"`
}

// State rebuilds the simulation state carried by the snapshot.
func (s Snapshot) State() simulation.State {
	return simulation.State{
		Day:   s.Day,
		Areas: append([]simulation.AreaState(nil), s.Areas...),
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	state := c.state.Clone()
	samples := append([]dashboard.ImpactSample(nil), c.samples...)
	active := c.feed.Active()
	if active == nil {
		active = []alerts.Alert{}
	}
	if samples == nil {
		samples = []dashboard.ImpactSample{}
	}

	snap := Snapshot{
		RunID:     c.runID,
		Version:   c.version,
		Day:       state.Day,
		MaxDay:    c.maxDay,
		Playing:   c.playing,
		Speed:     c.speed,
		Completed: state.Day >= c.maxDay,
		Areas:     state.Areas,
		Alerts:    active,
		Impact:    samples,
		Summary:   dashboard.Summarize(state, samples),
	}
	if snap.Completed {
		impact := dashboard.SummarizeImpact(samples)
		snap.ImpactSummary = &impact
	}
	return snap
}
