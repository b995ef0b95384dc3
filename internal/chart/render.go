package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	renderWidth  = 1024
	renderHeight = 500
)

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func timeSeries(l Line) gochart.TimeSeries {
	xs := make([]time.Time, len(l.Points))
	ys := make([]float64, len(l.Points))
	for i, p := range l.Points {
		xs[i] = p.Date
		ys[i] = p.Value
	}

	style := gochart.Style{
		StrokeColor: hexColor(l.Color),
		StrokeWidth: 2,
	}
	if l.Fill {
		style.FillColor = hexColor(l.Color).WithAlpha(64)
	}

	return gochart.TimeSeries{Name: l.Name, XValues: xs, YValues: ys, Style: style}
}

// RenderPriceSVG writes the price chart as SVG. At least two price points are required.
func RenderPriceSVG(w io.Writer, c *PriceChart) error {
	if c == nil || len(c.Price.Points) < 2 {
		return ErrNotEnoughData
	}

	first := c.Price.Points[0].Date
	last := c.Price.Points[len(c.Price.Points)-1].Date

	series := []gochart.Series{timeSeries(c.Price)}
	for _, t := range c.Targets {
		if len(t.Points) >= 2 {
			series = append(series, timeSeries(t))
		}
	}

	annotations := make([]gochart.Value2, 0, len(c.ReferenceLines))
	for _, ref := range c.ReferenceLines {
		series = append(series, gochart.TimeSeries{
			Name:    ref.Label,
			XValues: []time.Time{first, last},
			YValues: []float64{ref.Value, ref.Value},
			Style: gochart.Style{
				StrokeColor: hexColor(ref.Color),
				StrokeWidth: 1,
			},
		})
		annotations = append(annotations, gochart.Value2{
			XValue: gochart.TimeToFloat64(last),
			YValue: ref.Value,
			Label:  ref.Label,
		})
	}
	series = append(series, gochart.AnnotationSeries{Annotations: annotations})

	graph := gochart.Chart{
		Title:  c.Title,
		Width:  renderWidth,
		Height: renderHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 30, Left: 16, Right: 80, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		Series: series,
	}

	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render price chart: %w", err)
	}
	return nil
}

// RenderPSBarSVG writes the Price/Sales bar chart as SVG
func RenderPSBarSVG(w io.Writer, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNotEnoughData
	}

	values := make([]gochart.Value, len(bars))
	for i, b := range bars {
		values[i] = gochart.Value{
			Label: b.Symbol,
			Value: b.Value,
			Style: gochart.Style{
				FillColor:   hexColor(b.Color),
				StrokeColor: hexColor(b.Color),
				StrokeWidth: 0,
			},
		}
	}

	barWidth, barSpacing := barLayout(len(bars))
	graph := gochart.BarChart{
		Title:  "PS Metric Bar Chart",
		Width:  renderWidth,
		Height: renderHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Bars:       values,
	}

	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render ps chart: %w", err)
	}
	return nil
}

// barLayout splits the drawable width evenly between n bars
func barLayout(n int) (width, spacing int) {
	slot := (renderWidth - 100) / n
	width = slot * 3 / 4
	if width > 60 {
		width = 60
	}
	if width < 2 {
		width = 2
	}
	spacing = slot - width
	if spacing < 1 {
		spacing = 1
	}
	return width, spacing
}
