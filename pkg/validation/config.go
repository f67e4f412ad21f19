package validation

import (
	"fmt"

	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/iwvelando/outbreak-forecast/pkg/datetime"
)

// SimulationConfig is the subset of the simulation settings the validator
// inspects.
type SimulationConfig struct {
	MaxDay      int
	Speed       float64
	OnsetPolicy string
}

// AlertConfig is the subset of an alert definition the validator inspects.
type AlertConfig struct {
	Title    string
	Day      int
	Severity string
	Time     string
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Simulation SimulationConfig
	Alerts     []AlertConfig
}

// ValidateAlertDay warns when an alert can never surface during a run. The
// first surfacing happens on the day after the initial day.
func ValidateAlertDay(title string, day, maxDay int) string {
	if day <= constants.InitialDay {
		return fmt.Sprintf("Alert '%s' triggers on day %d, before the first step reaches day %d - it will never surface",
			title, day, constants.InitialDay+1)
	}
	if day > maxDay {
		return fmt.Sprintf("Alert '%s' triggers on day %d, after the final day %d - it will never surface",
			title, day, maxDay)
	}
	return ""
}

// ValidateAlertTime warns when an alert's display time is not a time of day
// like "08:30 AM". An empty time is allowed.
func ValidateAlertTime(title, value string) string {
	if value == "" {
		return ""
	}
	if _, err := datetime.NormalizeClock(value); err != nil {
		return fmt.Sprintf("Alert '%s' time '%s' is not in %s form - it will be displayed as written",
			title, value, datetime.ClockLayout)
	}
	return ""
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	maxDay := cv.Simulation.MaxDay
	if maxDay == 0 {
		maxDay = constants.DefaultMaxDay
	}

	if cv.Simulation.OnsetPolicy == constants.OnsetPolicyCatchUp {
		warnings = append(warnings, "Onset policy 'catch-up' seeds areas on any day at or after their onset day - results differ from the exact policy whenever a day is skipped")
	}

	for _, alert := range cv.Alerts {
		if warning := ValidateAlertDay(alert.Title, alert.Day, maxDay); warning != "" {
			warnings = append(warnings, warning)
		}
		if warning := ValidateAlertTime(alert.Title, alert.Time); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
