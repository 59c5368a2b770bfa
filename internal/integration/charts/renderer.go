// Package charts renders dashboard analytics as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/finsight/backend/internal/application/usecase/analytics"
)

// Renderer generates PNG charts from analytics outputs.
type Renderer struct{}

// NewRenderer creates a new chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderBreakdown renders the category breakdown as a pie chart.
// Returns nil bytes when there is nothing to draw.
func (r *Renderer) RenderBreakdown(breakdown *analytics.GetBreakdownOutput) ([]byte, error) {
	if breakdown == nil || len(breakdown.Categories) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(breakdown.Categories))
	for _, item := range breakdown.Categories {
		// Slices below 1% clutter the chart without being readable
		if item.Percentage < 1.0 {
			continue
		}
		value := chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", item.Name, item.Total.StringFixed(2), item.Percentage),
			Value: toFloat(item.Total.InexactFloat64()),
		}
		if color, ok := parseHexColor(item.Color); ok {
			value.Style = chart.Style{
				FillColor: color,
				FontSize:  12,
				FontColor: chart.ColorBlack,
			}
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render breakdown chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// RenderTrend renders the monthly expense trend as a bar chart.
func (r *Renderer) RenderTrend(trend *analytics.GetTrendsOutput) ([]byte, error) {
	if trend == nil || len(trend.Points) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, len(trend.Points))
	for i, point := range trend.Points {
		bars[i] = chart.Value{
			Label: point.Label,
			Value: toFloat(point.Total.InexactFloat64()),
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				FillColor:   chart.ColorRed.WithAlpha(180),
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		}
	}

	graph := chart.BarChart{
		Title:    "Monthly expenses",
		Width:    1200,
		Height:   600,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// parseHexColor converts a #RRGGBB string to a drawing color.
func parseHexColor(hex string) (drawing.Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return drawing.Color{}, false
	}
	return drawing.ColorFromHex(hex), true
}

// toFloat guards against NaN from decimal conversion edge cases.
func toFloat(v float64) float64 {
	if v != v {
		return 0
	}
	return v
}
