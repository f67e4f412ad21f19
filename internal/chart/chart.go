// Package chart renders the impact comparison of a run as a PNG line chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/outbreak-forecast/internal/dashboard"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

// ErrNotEnoughSamples is returned when fewer than two samples exist, since a
// line needs two points.
var ErrNotEnoughSamples = errors.New("at least two impact samples are required")

// Metric selects which pair of series is drawn.
type Metric string

// Supported metrics.
const (
	MetricCases Metric = "cases"
	MetricLoss  Metric = "loss"
)

// ParseMetric converts a query value into a Metric. An empty value selects
// cases.
func ParseMetric(value string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(value))) {
	case "", MetricCases:
		return MetricCases, nil
	case MetricLoss:
		return MetricLoss, nil
	default:
		return "", fmt.Errorf("invalid chart metric %q; must be %q or %q", value, MetricCases, MetricLoss)
	}
}

// Options control the rendered image.
type Options struct {
	Metric Metric
	Width  int
	Height int
}

var (
	actualColor    = drawing.Color{R: 239, G: 68, B: 68, A: 255}
	predictedColor = drawing.Color{R: 59, G: 130, B: 246, A: 255}
)

// Render draws actual against predicted figures for every sample and writes
// the PNG to w.
func Render(logger *zap.Logger, w io.Writer, samples []dashboard.ImpactSample, opts Options) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(samples) < 2 {
		return ErrNotEnoughSamples
	}
	if opts.Metric == "" {
		opts.Metric = MetricCases
	}
	if opts.Width <= 0 {
		opts.Width = constants.DefaultChartWidth
	}
	if opts.Height <= 0 {
		opts.Height = constants.DefaultChartHeight
	}

	days := make([]float64, len(samples))
	actual := make([]float64, len(samples))
	predicted := make([]float64, len(samples))
	for i, sample := range samples {
		days[i] = float64(sample.Day)
		switch opts.Metric {
		case MetricLoss:
			actual[i] = sample.ActualEconomicLoss
			predicted[i] = sample.PredictedEconomicLoss
		default:
			actual[i] = float64(sample.ActualCases)
			predicted[i] = float64(sample.PredictedCases)
		}
	}

	label := "Cases"
	if opts.Metric == MetricLoss {
		label = "Economic Loss (lakhs)"
	}

	graph := gochart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  "Day",
			Style: gochart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
			Ticks: dayTicks(days),
		},
		YAxis: gochart.YAxis{
			Name:  label,
			Style: gochart.Style{FontSize: 10.0},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Actual " + label,
				XValues: days,
				YValues: actual,
				Style:   gochart.Style{StrokeColor: actualColor, StrokeWidth: 3.0},
			},
			gochart.ContinuousSeries{
				Name:    "Predicted " + label,
				XValues: days,
				YValues: predicted,
				Style:   gochart.Style{StrokeColor: predictedColor, StrokeWidth: 3.0, StrokeDashArray: []float64{5.0, 5.0}},
			},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", opts.Metric, err)
	}

	logger.Debug("rendered impact chart",
		zap.String("op", "chart.Render"),
		zap.String("metric", string(opts.Metric)),
		zap.Int("samples", len(samples)),
	)
	return nil
}

func dayTicks(days []float64) []gochart.Tick {
	ticks := make([]gochart.Tick, 0, len(days))
	for _, day := range days {
		ticks = append(ticks, gochart.Tick{
			Value: day,
			Label: fmt.Sprintf("%.0f", day),
		})
	}
	return ticks
}
