// Package chart renders the cumulative realized PnL timeline as an image
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bimakw/polywallet/internal/application/services"
)

// ErrNoPoints is returned when there is nothing to plot
var ErrNoPoints = errors.New("timeline has no points")

const (
	Width  = 900
	Height = 400
)

var (
	lineColor = drawing.ColorFromHex("3b82f6")
	fillColor = drawing.ColorFromHex("3b82f6").WithAlpha(26)
)

// RenderTimeline renders the chart data as a PNG line chart. The line
// starts at zero and each market is a dot coloured by its own PnL.
func RenderTimeline(data services.ChartData) ([]byte, error) {
	if len(data.Series) == 0 {
		return nil, ErrNoPoints
	}

	xValues := make([]float64, 0, len(data.Series)+1)
	yValues := make([]float64, 0, len(data.Series)+1)
	xValues = append(xValues, 0)
	yValues = append(yValues, 0)
	for i, v := range data.Series {
		xValues = append(xValues, float64(i+1))
		yValues = append(yValues, v)
	}

	dotColors := make([]drawing.Color, len(xValues))
	dotColors[0] = lineColor
	for i := range data.Series {
		if i < len(data.PointColors) {
			dotColors[i+1] = drawing.ColorFromHex(trimHash(data.PointColors[i]))
		} else {
			dotColors[i+1] = lineColor
		}
	}

	series := chart.ContinuousSeries{
		Name: "Cumulative PnL",
		Style: chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2,
			FillColor:   fillColor,
			DotWidth:    5,
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				if index >= 0 && index < len(dotColors) {
					return dotColors[index]
				}
				return lineColor
			},
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  "Cumulative realized PnL",
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Range:          yRange(yValues),
			ValueFormatter: TickLabel,
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// TickLabel formats a y-axis value as a signed whole dollar amount, e.g. "+$15"
func TickLabel(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	sign := "+"
	if f < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s$%.0f", sign, math.Abs(f))
}

// yRange always includes zero and pads flat series so the axis has height
func yRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}
