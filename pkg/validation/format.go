// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/outbreak-forecast/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateSpeed checks that a speed multiplier lies within the supported range.
func ValidateSpeed(speed float64) error {
	if math.IsNaN(speed) || speed < constants.MinSpeed || speed > constants.MaxSpeed {
		return fmt.Errorf("expected speed between %.1f and %.1f, got %v",
			constants.MinSpeed, constants.MaxSpeed, speed)
	}
	return nil
}

// ValidateMaxDay checks that a run advances at least once and stops before
// case figures overflow.
func ValidateMaxDay(maxDay int) error {
	if maxDay <= constants.InitialDay || maxDay > constants.SafeMaxDay {
		return fmt.Errorf("expected max day between %d and %d, got %d",
			constants.InitialDay+1, constants.SafeMaxDay, maxDay)
	}
	return nil
}

// ValidateOnsetPolicy checks if the onset policy is one of the supported policies.
func ValidateOnsetPolicy(policy string) error {
	if policy != "" && policy != constants.OnsetPolicyExact && policy != constants.OnsetPolicyCatchUp {
		return fmt.Errorf("expected onset policy of %s or %s, got %s",
			constants.OnsetPolicyExact, constants.OnsetPolicyCatchUp, policy)
	}
	return nil
}

// ValidateLogLevel checks if the log level is one zap understands here.
func ValidateLogLevel(level string) error {
	switch level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
}
