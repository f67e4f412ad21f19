package alerts

import (
	"encoding/json"
	"testing"
)

func TestDefaultCatalogForDay(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name          string
		day           int
		expectedTitle []string
	}{
		{"Day one has no alerts", 1, nil},
		{"Day two pattern", 2, []string{"Unusual Pattern Detected"}},
		{"Day three confirmation", 3, []string{"Outbreak Confirmation"}},
		{"Day four spread risk", 4, []string{"Spread Risk Alert"}},
		{"Late day has no alerts", 15, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.ForDay(tt.day)
			if len(got) != len(tt.expectedTitle) {
				t.Fatalf("ForDay(%d) returned %d alerts, expected %d", tt.day, len(got), len(tt.expectedTitle))
			}
			for i, title := range tt.expectedTitle {
				if got[i].Title != title {
					t.Errorf("ForDay(%d)[%d].Title = %q, expected %q", tt.day, i, got[i].Title, title)
				}
			}
		})
	}
}

func TestForDayPreservesCatalogOrder(t *testing.T) {
	catalog := Catalog{
		{Day: 5, Title: "first"},
		{Day: 6, Title: "other"},
		{Day: 5, Title: "second"},
		{Day: 5, Title: "third"},
	}

	got := catalog.ForDay(5)
	expected := []string{"first", "second", "third"}
	if len(got) != len(expected) {
		t.Fatalf("ForDay(5) returned %d alerts, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i].Title != expected[i] {
			t.Errorf("ForDay(5)[%d] = %q, expected %q", i, got[i].Title, expected[i])
		}
	}
}

func TestFeedSurface(t *testing.T) {
	feed := NewFeed(nil)

	if surfaced := feed.Surface(2); len(surfaced) != 1 || surfaced[0].Title != "Unusual Pattern Detected" {
		t.Fatalf("Surface(2) = %+v, expected the day 2 alert", surfaced)
	}
	if len(feed.Active()) != 1 {
		t.Fatalf("feed length = %d, expected 1", len(feed.Active()))
	}

	feed.Surface(3)
	feed.Surface(4)
	feed.Surface(5)

	active := feed.Active()
	expected := []string{"Unusual Pattern Detected", "Outbreak Confirmation", "Spread Risk Alert"}
	if len(active) != len(expected) {
		t.Fatalf("active alerts = %d, expected %d", len(active), len(expected))
	}
	for i := range expected {
		if active[i].Title != expected[i] {
			t.Errorf("active[%d] = %q, expected %q", i, active[i].Title, expected[i])
		}
	}
}

func TestFeedActiveIsCopy(t *testing.T) {
	feed := NewFeed(nil)
	feed.Surface(2)

	active := feed.Active()
	active[0].Title = "changed"

	if feed.Active()[0].Title != "Unusual Pattern Detected" {
		t.Fatalf("mutating Active() leaked into the feed")
	}
}

func TestFeedReset(t *testing.T) {
	feed := NewFeed(nil)
	feed.Surface(2)
	feed.Surface(3)
	feed.Reset()

	if len(feed.Active()) != 0 {
		t.Fatalf("feed length after reset = %d, expected 0", len(feed.Active()))
	}
	if surfaced := feed.Surface(2); len(surfaced) != 1 {
		t.Fatalf("Surface(2) after reset returned %d alerts, expected 1", len(surfaced))
	}
}

func TestNewFeedCopiesCatalog(t *testing.T) {
	catalog := Catalog{{Day: 2, Title: "original"}}
	feed := NewFeed(catalog)
	catalog[0].Title = "changed"

	if got := feed.Surface(2); got[0].Title != "original" {
		t.Fatalf("feed observed catalog mutation: %q", got[0].Title)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input     string
		expected  Severity
		wantError bool
	}{
		{"info", SeverityInfo, false},
		{"Warning", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{" error ", SeverityError, false},
		{"critical", SeverityInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseSeverity(tt.input)
		if tt.wantError {
			if err == nil {
				t.Errorf("ParseSeverity(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSeverity(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseSeverity(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestAlertJSON(t *testing.T) {
	alert := DefaultCatalog()[1]

	data, err := json.Marshal(alert)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["severity"] != "error" {
		t.Errorf("severity = %v, expected \"error\"", decoded["severity"])
	}
	if decoded["day"] != float64(3) {
		t.Errorf("day = %v, expected 3", decoded["day"])
	}

	var bad Alert
	if err := json.Unmarshal([]byte(`{"severity":"fatal"}`), &bad); err == nil {
		t.Errorf("expected error decoding unknown severity")
	}
}
