// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/iwvelando/outbreak-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override config values,
// e.g. OUTBREAK_SIMULATION_SPEED.
const EnvPrefix = "OUTBREAK"

// Configuration holds all configuration for outbreak-forecast.
type Configuration struct {
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Alerts     []AlertConfig    `yaml:"alerts,omitempty" mapstructure:"alerts"`
	Logging    LoggingConfig    `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output,omitempty" mapstructure:"output"`
}

// SimulationConfig holds the driving loop and model options.
type SimulationConfig struct {
	MaxDay       int           `yaml:"maxDay" mapstructure:"maxDay"`
	Speed        float64       `yaml:"speed" mapstructure:"speed"`
	OnsetPolicy  string        `yaml:"onsetPolicy" mapstructure:"onsetPolicy"` // exact, catch-up
	BaseInterval time.Duration `yaml:"baseInterval" mapstructure:"baseInterval"`
}

// AlertConfig defines one reference alert. When any are configured they
// replace the built-in catalog.
type AlertConfig struct {
	Day         int    `yaml:"day" mapstructure:"day"`
	Severity    string `yaml:"severity" mapstructure:"severity"` // info, warning, error
	Title       string `yaml:"title" mapstructure:"title"`
	Description string `yaml:"description" mapstructure:"description"`
	Location    string `yaml:"location" mapstructure:"location"`
	Time        string `yaml:"time" mapstructure:"time"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
}

// Default returns the configuration used when no file is supplied.
func Default() *Configuration {
	return &Configuration{
		Simulation: SimulationConfig{
			MaxDay:       constants.DefaultMaxDay,
			Speed:        constants.DefaultSpeed,
			OnsetPolicy:  constants.OnsetPolicyExact,
			BaseInterval: constants.DefaultBaseInterval,
		},
		Output: OutputConfig{Format: constants.OutputFormatPretty},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("simulation.maxDay", defaults.Simulation.MaxDay)
	v.SetDefault("simulation.speed", defaults.Simulation.Speed)
	v.SetDefault("simulation.onsetPolicy", defaults.Simulation.OnsetPolicy)
	v.SetDefault("simulation.baseInterval", defaults.Simulation.BaseInterval)
	v.SetDefault("output.format", defaults.Output.Format)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Validate returns the first configuration error that prevents a run.
func (c *Configuration) Validate() error {
	if err := validation.ValidateMaxDay(c.Simulation.MaxDay); err != nil {
		return fmt.Errorf("simulation.maxDay: %w", err)
	}
	if err := validation.ValidateSpeed(c.Simulation.Speed); err != nil {
		return fmt.Errorf("simulation.speed: %w", err)
	}
	if err := validation.ValidateOnsetPolicy(c.Simulation.OnsetPolicy); err != nil {
		return fmt.Errorf("simulation.onsetPolicy: %w", err)
	}
	if c.Simulation.BaseInterval < 0 {
		return fmt.Errorf("simulation.baseInterval must not be negative, got %s", c.Simulation.BaseInterval)
	}
	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := c.toValidator()
	return validator.ValidateAll()
}
