package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/outbreak-forecast/internal/alerts"
	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/internal/forecast"
	"github.com/iwvelando/outbreak-forecast/internal/simulation"
)

func testForecast() forecast.Forecast {
	initial := simulation.InitialState()
	next := simulation.Step(initial)
	warning := alerts.DefaultCatalog().ForDay(2)

	return forecast.Forecast{
		RunID:  "run-1",
		Policy: "exact",
		Days: []forecast.Day{
			{Day: initial.Day, Areas: initial.Areas, Summary: dashboard.Summarize(initial, nil)},
			{Day: next.Day, Areas: next.Areas, Summary: dashboard.Summarize(next.State, nil), Alerts: warning},
		},
		Samples: []dashboard.ImpactSample{dashboard.NewImpactSample(initial, next)},
		Alerts:  warning,
		Impact: dashboard.ImpactSummary{
			CasesPrevented:  -602,
			EconomicSavings: -4.0,
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	PrettyFormat(testForecast())

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	output := buf.String()

	expected := []string{
		"--- Results for run run-1 (onset policy exact) ---",
		"Day | Miyapur | Kondapur | Gachibowli | Hitech City | Total Cases | Economic Loss | Alerts",
		"  1 | 10 | 0 | 0 | 0 | 10 | ₹0.1L | ",
		"  2 | 18 | 0 | 0 | 0 | 18 | ₹0.2L | Unusual Pattern Detected",
		"--- Impact analysis ---",
		"  1 | 10 | 612 | ₹0.1L | ₹4.1L",
		"[warning] day 2 08:30 AM Miyapur: Unusual Pattern Detected",
		"--- Summary (day 2) ---",
		"Total Cases: 18",
		"Population at Risk: 270",
		"Case Trend: n/a",
		"Cases Prevented: -602",
		"Economic Savings: -₹4.0L",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q\n%s", want, output)
		}
	}
}

func TestWritePrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	WritePretty(&buf, forecast.Forecast{})
	output := buf.String()

	if strings.Contains(output, "--- Alerts ---") {
		t.Errorf("expected no alerts section for an empty forecast")
	}
	if !strings.Contains(output, "--- Summary (day 0) ---") {
		t.Errorf("expected zero summary for an empty forecast, got:\n%s", output)
	}
}

func TestCsvString(t *testing.T) {
	output := CsvString(testForecast())
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), output)
	}

	tests := []struct {
		name string
		line int
		want string
	}{
		{"header", 0, `"day","cases (Miyapur)","cases (Kondapur)","cases (Gachibowli)","cases (Hitech City)","total cases","economic loss","predicted cases","predicted economic loss","alerts"`},
		{"sampled day", 1, `"1","10","0","0","0","10","0.1000","612","4.10",""`},
		{"unsampled day", 2, `"2","18","0","0","0","18","0.1700","","","Unusual Pattern Detected"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if lines[tt.line] != tt.want {
				t.Errorf("line %d = %s, want %s", tt.line, lines[tt.line], tt.want)
			}
		})
	}
}

func TestCsvFormatWritesStdout(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	CsvFormat(testForecast())

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	if buf.String() != CsvString(testForecast()) {
		t.Errorf("CsvFormat and CsvString disagree")
	}
}
