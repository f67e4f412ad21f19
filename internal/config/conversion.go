package config

import (
	"fmt"

	"github.com/iwvelando/outbreak-forecast/internal/alerts"
	"github.com/iwvelando/outbreak-forecast/internal/clock"
	"github.com/iwvelando/outbreak-forecast/internal/controller"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
	"github.com/iwvelando/outbreak-forecast/pkg/datetime"
	"github.com/iwvelando/outbreak-forecast/pkg/validation"
	"go.uber.org/zap"
)

// ToAlert converts a configured alert into a reference alert.
func (a AlertConfig) ToAlert() (alerts.Alert, error) {
	severity, err := alerts.ParseSeverity(a.Severity)
	if err != nil {
		return alerts.Alert{}, fmt.Errorf("alert '%s': %w", a.Title, err)
	}
	displayTime := a.Time
	if normalized, err := datetime.NormalizeClock(a.Time); err == nil {
		displayTime = normalized
	}
	return alerts.Alert{
		Day:         a.Day,
		Severity:    severity,
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Time:        displayTime,
	}, nil
}

// FromAlert converts a reference alert into its configuration form.
func FromAlert(alert alerts.Alert) AlertConfig {
	return AlertConfig{
		Day:         alert.Day,
		Severity:    alert.Severity.String(),
		Title:       alert.Title,
		Description: alert.Description,
		Location:    alert.Location,
		Time:        alert.Time,
	}
}

// Catalog returns the configured alerts, or the built-in catalog when none
// are configured.
func (c *Configuration) Catalog() (alerts.Catalog, error) {
	if len(c.Alerts) == 0 {
		return alerts.DefaultCatalog(), nil
	}

	catalog := make(alerts.Catalog, 0, len(c.Alerts))
	for _, configured := range c.Alerts {
		alert, err := configured.ToAlert()
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, alert)
	}
	return catalog, nil
}

// Engine builds the simulation engine for the configured onset policy.
func (c *Configuration) Engine(logger *zap.Logger) (*simulation.Engine, error) {
	policy, err := simulation.ParseOnsetPolicy(c.Simulation.OnsetPolicy)
	if err != nil {
		return nil, err
	}
	return simulation.NewEngine(logger, policy), nil
}

// ControllerOptions converts the configuration into controller options. A
// nil scheduler selects the wall clock.
func (c *Configuration) ControllerOptions(logger *zap.Logger, scheduler clock.Scheduler) (controller.Options, error) {
	engine, err := c.Engine(logger)
	if err != nil {
		return controller.Options{}, err
	}
	catalog, err := c.Catalog()
	if err != nil {
		return controller.Options{}, err
	}

	return controller.Options{
		MaxDay:       c.Simulation.MaxDay,
		Speed:        c.Simulation.Speed,
		BaseInterval: c.Simulation.BaseInterval,
		Engine:       engine,
		Catalog:      catalog,
		Scheduler:    scheduler,
	}, nil
}

func (c *Configuration) toValidator() validation.ConfigValidator {
	validator := validation.ConfigValidator{
		Simulation: validation.SimulationConfig{
			MaxDay:      c.Simulation.MaxDay,
			Speed:       c.Simulation.Speed,
			OnsetPolicy: c.Simulation.OnsetPolicy,
		},
	}
	for _, alert := range c.Alerts {
		validator.Alerts = append(validator.Alerts, validation.AlertConfig{
			Title:    alert.Title,
			Day:      alert.Day,
			Severity: alert.Severity,
			Time:     alert.Time,
		})
	}
	return validator
}
