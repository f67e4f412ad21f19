// Package alerts holds the pre-authored surveillance alerts and the feed that
// surfaces them as the simulation reaches their trigger day.
package alerts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity classifies an alert for display.
type Severity int

// Supported severities.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// ParseSeverity converts "info", "warning" or "error" into a Severity.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityInfo, fmt.Errorf("invalid alert severity %q", value)
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// MarshalJSON encodes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Alert is an immutable, pre-authored notice tied to a trigger day.
type Alert struct {
	Day         int      `json:"day"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Time        string   `json:"time"`
}

// Catalog is an ordered list of reference alerts.
type Catalog []Alert

// DefaultCatalog returns the alerts shipped with the demonstration.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Day:         2,
			Severity:    SeverityWarning,
			Title:       "Unusual Pattern Detected",
			Description: "ML models detected abnormal respiratory case pattern",
			Location:    "Miyapur",
			Time:        "08:30 AM",
		},
		{
			Day:         3,
			Severity:    SeverityError,
			Title:       "Outbreak Confirmation",
			Description: "Disease cluster confirmed. Traditional systems would detect in 48-72 hours",
			Location:    "Miyapur",
			Time:        "10:15 AM",
		},
		{
			Day:         4,
			Severity:    SeverityWarning,
			Title:       "Spread Risk Alert",
			Description: "High risk of spread based on commuter patterns",
			Location:    "Kondapur",
			Time:        "09:45 AM",
		},
	}
}

// ForDay returns the alerts triggered on the given day, in catalog order.
func (c Catalog) ForDay(day int) []Alert {
	var matched []Alert
	for _, alert := range c {
		if alert.Day == day {
			matched = append(matched, alert)
		}
	}
	return matched
}
