// Package constants provides shared constants for the outbreak-forecast application.
package constants

import "time"

// Simulation model constants
const (
	// InitialDay is the day every simulation run starts on
	InitialDay = 1

	// DefaultMaxDay is the day on which the driving loop stops advancing
	DefaultMaxDay = 15

	// SafeMaxDay is the largest max day whose case counts, seven-day case
	// predictions and population at risk all fit an int64. Predictions from
	// the day 65 state would overflow, and the final day is never predicted.
	SafeMaxDay = 65

	// CaseGrowthRate multiplies active cases in an infected area on every step
	CaseGrowthRate = 1.8

	// LossGrowthRate multiplies economic loss in an infected area on every step
	LossGrowthRate = 1.7

	// PredictionHorizonDays is how far ahead predictions compound growth
	PredictionHorizonDays = 7

	// OnsetCases is the case count an area is seeded with on its onset day
	OnsetCases = 10

	// OnsetEconomicLoss is the economic loss (lakhs) an area is seeded with on its onset day
	OnsetEconomicLoss = 0.1

	// PopulationAtRiskPerCase is the number of people each active case puts at risk
	PopulationAtRiskPerCase = 15

	// MaxMapIntensity caps the map overlay fill opacity
	MaxMapIntensity = 0.8
)

// Driving loop constants
const (
	// DefaultBaseInterval is the real-time delay between steps at speed 1
	DefaultBaseInterval = 2000 * time.Millisecond

	// DefaultSpeed is the speed multiplier used when none is configured
	DefaultSpeed = 1.0

	// MinSpeed is the slowest supported speed multiplier
	MinSpeed = 0.5

	// MaxSpeed is the fastest supported speed multiplier
	MaxSpeed = 3.0
)

// Onset policy constants
const (
	// OnsetPolicyExact seeds an area only on the step whose day equals its onset day
	OnsetPolicyExact = "exact"

	// OnsetPolicyCatchUp seeds an uninfected area on any step at or after its onset day
	OnsetPolicyCatchUp = "catch-up"
)

// Numeric precision constants
const (
	// DecimalPrecision is the precision for loss rounding (2 decimal places)
	DecimalPrecision = 100

	// TrendPrecision is the precision for trend percentages (1 decimal place)
	TrendPrecision = 10

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Alert display constants
const (
	// ClockLayout is the time-of-day format of alert display times, e.g. "08:30 AM"
	ClockLayout = "03:04 PM"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxMessageSizeBytes is the default read limit for live feed client messages (4 KB)
	DefaultMaxMessageSizeBytes int64 = 4 * 1024

	// MinMessageSizeBytes is the smallest read limit that still admits every control message
	MinMessageSizeBytes int64 = 64

	// MaxMessageSizeBytes caps the live feed read limit (64 KB)
	MaxMessageSizeBytes int64 = 64 * 1024
)

// Chart rendering defaults
const (
	// DefaultChartWidth is the default impact chart width in pixels
	DefaultChartWidth = 960

	// DefaultChartHeight is the default impact chart height in pixels
	DefaultChartHeight = 400
)
