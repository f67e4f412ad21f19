// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/outbreak-forecast/internal/forecast"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
	"github.com/iwvelando/outbreak-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result forecast.Forecast) {
	WritePretty(os.Stdout, result)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result forecast.Forecast) {
	WriteCsv(os.Stdout, result)
}

// CsvString returns the comma-separated value rendering of result.
func CsvString(result forecast.Forecast) string {
	var buf bytes.Buffer
	WriteCsv(&buf, result)
	return buf.String()
}

// WritePretty writes the human-readable tables to w.
func WritePretty(w io.Writer, result forecast.Forecast) {
	p := message.NewPrinter(language.English)
	areas := simulation.Areas()

	_, _ = fmt.Fprintf(w, "--- Results for run %s (onset policy %s) ---\n", result.RunID, result.Policy)
	header := []string{"Day"}
	rule := []string{"___"}
	for _, area := range areas {
		header = append(header, area.String())
		rule = append(rule, strings.Repeat("_", len(area.String())))
	}
	header = append(header, "Total Cases", "Economic Loss", "Alerts")
	rule = append(rule, "___________", "_____________", "______")
	_, _ = fmt.Fprintln(w, strings.Join(header, " | "))
	_, _ = fmt.Fprintln(w, strings.Join(rule, " | "))

	for _, day := range result.Days {
		state := simulation.State{Day: day.Day, Areas: day.Areas}
		_, _ = p.Fprintf(w, "%3d", day.Day)
		for _, area := range areas {
			cases := 0
			if current, ok := state.Lookup(area); ok {
				cases = current.Cases
			}
			_, _ = p.Fprintf(w, " | %d", cases)
		}
		_, _ = p.Fprintf(w, " | %d | %s | %s\n",
			day.Summary.TotalCases, format.Lakhs(day.Summary.TotalEconomicLoss), alertTitles(day))
	}

	_, _ = fmt.Fprintf(w, "\n--- Impact analysis ---\n")
	_, _ = fmt.Fprintf(w, "Day | Actual Cases | Predicted Cases | Actual Loss | Predicted Loss\n")
	_, _ = fmt.Fprintf(w, "___ | ____________ | _______________ | ___________ | ______________\n")
	for _, sample := range result.Samples {
		_, _ = p.Fprintf(w, "%3d | %d | %d | %s | %s\n",
			sample.Day, sample.ActualCases, sample.PredictedCases,
			format.Lakhs(sample.ActualEconomicLoss), format.Lakhs(sample.PredictedEconomicLoss))
	}

	if len(result.Alerts) > 0 {
		_, _ = fmt.Fprintf(w, "\n--- Alerts ---\n")
		for _, alert := range result.Alerts {
			_, _ = fmt.Fprintf(w, "[%s] day %d %s %s: %s - %s\n",
				alert.Severity, alert.Day, alert.Time, alert.Location, alert.Title, alert.Description)
		}
	}

	final := result.Final()
	_, _ = fmt.Fprintf(w, "\n--- Summary (day %d) ---\n", final.Day)
	_, _ = fmt.Fprintf(w, "Total Cases: %s\n", format.Count(final.Summary.TotalCases))
	_, _ = fmt.Fprintf(w, "Economic Impact: %s\n", format.Lakhs(final.Summary.TotalEconomicLoss))
	_, _ = fmt.Fprintf(w, "Affected Areas: %d\n", final.Summary.AffectedAreas)
	_, _ = fmt.Fprintf(w, "Population at Risk: %s\n", format.Count(final.Summary.PopulationAtRisk))
	_, _ = fmt.Fprintf(w, "Case Trend: %s\n", format.Trend(final.Summary.CaseTrend))
	_, _ = fmt.Fprintf(w, "Cases Prevented: %s\n", format.Count(result.Impact.CasesPrevented))
	_, _ = fmt.Fprintf(w, "Economic Savings: %s\n", format.Lakhs(result.Impact.EconomicSavings))
}

// WriteCsv writes one row per day with per-area cases and the impact sample
// recorded on that day, if any.
func WriteCsv(w io.Writer, result forecast.Forecast) {
	areas := simulation.Areas()
	samples := make(map[int]int, len(result.Samples))
	for i, sample := range result.Samples {
		samples[sample.Day] = i
	}

	_, _ = fmt.Fprintf(w, `"day"`)
	for _, area := range areas {
		_, _ = fmt.Fprintf(w, `,"cases (%s)"`, area)
	}
	_, _ = fmt.Fprintf(w, `,"total cases","economic loss","predicted cases","predicted economic loss","alerts"`)
	_, _ = fmt.Fprintf(w, "\n")

	for _, day := range result.Days {
		state := simulation.State{Day: day.Day, Areas: day.Areas}
		_, _ = fmt.Fprintf(w, `"%d"`, day.Day)
		for _, area := range areas {
			cases := 0
			if current, ok := state.Lookup(area); ok {
				cases = current.Cases
			}
			_, _ = fmt.Fprintf(w, `,"%d"`, cases)
		}
		_, _ = fmt.Fprintf(w, `,"%d","%.4f"`, day.Summary.TotalCases, day.Summary.TotalEconomicLoss)
		if i, ok := samples[day.Day]; ok {
			_, _ = fmt.Fprintf(w, `,"%d","%.2f"`, result.Samples[i].PredictedCases, result.Samples[i].PredictedEconomicLoss)
		} else {
			_, _ = fmt.Fprintf(w, `,"",""`)
		}
		_, _ = fmt.Fprintf(w, `,"%s"`, strings.ReplaceAll(alertTitles(day), `"`, `""`))
		_, _ = fmt.Fprintf(w, "\n")
	}
}

func alertTitles(day forecast.Day) string {
	titles := make([]string, 0, len(day.Alerts))
	for _, alert := range day.Alerts {
		titles = append(titles, alert.Title)
	}
	return strings.Join(titles, ",")
}
