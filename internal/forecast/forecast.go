// Package forecast runs a complete simulation headlessly and collects the
// per-day results for reporting.
package forecast

import (
	"errors"
	"fmt"

	"github.com/iwvelando/outbreak-forecast/internal/alerts"
	"github.com/iwvelando/outbreak-forecast/internal/clock"
	"github.com/iwvelando/outbreak-forecast/internal/config"
	"github.com/iwvelando/outbreak-forecast/internal/controller"
	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
	"go.uber.org/zap"
)

// Day holds the snapshot reached on one simulated day.
type Day struct {
	Day     int                    `json:"day"`
	Areas   []simulation.AreaState `json:"areas"`
	Summary dashboard.Summary      `json:"summary"`
	Alerts  []alerts.Alert         `json:"alerts,omitempty"`
}

// Forecast holds all information related to a completed run.
type Forecast struct {
	RunID   string                   `json:"runId"`
	Policy  string                   `json:"onsetPolicy"`
	Days    []Day                    `json:"days"`
	Samples []dashboard.ImpactSample `json:"samples"`
	Alerts  []alerts.Alert           `json:"alerts"`
	Impact  dashboard.ImpactSummary  `json:"impact"`
}

// Final returns the last day of the run.
func (f Forecast) Final() Day {
	if len(f.Days) == 0 {
		return Day{}
	}
	return f.Days[len(f.Days)-1]
}

// GetForecast steps a fresh controller from the initial state to the
// configured final day. The controller is never played, so no timers run.
func GetForecast(logger *zap.Logger, conf config.Configuration) (Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := conf.ControllerOptions(logger, clock.NewFake())
	if err != nil {
		return Forecast{}, err
	}
	ctrl, err := controller.New(logger, opts)
	if err != nil {
		return Forecast{}, err
	}

	snap := ctrl.Snapshot()
	result := Forecast{
		RunID:  snap.RunID,
		Policy: opts.Engine.Policy().String(),
		Days:   []Day{dayFromSnapshot(snap, 0)},
	}

	for {
		seen := len(snap.Alerts)
		snap, err = ctrl.StepOnce()
		if errors.Is(err, controller.ErrRunComplete) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to advance day %d: %w", result.Final().Day, err)
		}
		result.Days = append(result.Days, dayFromSnapshot(snap, seen))

		logger.Debug(fmt.Sprintf("computed day %d", snap.Day),
			zap.String("op", "forecast.GetForecast"),
			zap.Int("totalCases", snap.Summary.TotalCases),
		)
	}

	final := ctrl.Snapshot()
	result.Samples = final.Impact
	result.Alerts = final.Alerts
	result.Impact = dashboard.SummarizeImpact(final.Impact)

	return result, nil
}

func dayFromSnapshot(snap controller.Snapshot, seenAlerts int) Day {
	day := Day{
		Day:     snap.Day,
		Areas:   snap.Areas,
		Summary: snap.Summary,
	}
	if len(snap.Alerts) > seenAlerts {
		day.Alerts = snap.Alerts[seenAlerts:]
	}
	return day
}
