// Package chart turns price, technical and company data into chart-ready
// series. The JSON shapes here are what the dashboard front end draws; the
// Render functions produce the same charts as SVG on the server.
package chart

import (
	"errors"
	"time"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNotEnoughData is returned when a series is too short to draw
var ErrNotEnoughData = errors.New("not enough data to draw chart")

// Point is one (date, value) sample
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Line is a named series drawn as a line or filled area
type Line struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Fill   bool    `json:"fill"`
	Points []Point `json:"points"`
}

// ReferenceLine is a horizontal line across the whole chart
type ReferenceLine struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ReferenceArea is a shaded vertical band between two dates
type ReferenceArea struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Color string    `json:"color"`
}

// PriceChart is the price area chart with target price lines and min/max envelope
type PriceChart struct {
	Symbol         string             `json:"symbol"`
	Title          string             `json:"title"`
	Price          Line               `json:"price"`
	Targets        []Line             `json:"targets"`
	ReferenceLines []ReferenceLine    `json:"reference_lines"`
	ReferenceAreas []ReferenceArea    `json:"reference_areas"`
	Summary        model.PriceSummary `json:"summary"`
}

const (
	colorPrice   = "#ff69b4"
	colorHighTP  = "#ff0000"
	colorMidTP   = "#808080"
	colorLowTP   = "#008000"
	colorMinLine = "#0000ff"
	colorMaxLine = "#ff0000"
)

// Summarize computes the min/max envelope of points.
// Returns ErrNotEnoughData for an empty series.
func Summarize(symbol string, points []model.PricePoint) (model.PriceSummary, error) {
	if len(points) == 0 {
		return model.PriceSummary{}, ErrNotEnoughData
	}

	summary := model.PriceSummary{
		Symbol: symbol,
		Count:  len(points),
		Min:    points[0].Price,
		Max:    points[0].Price,
		First:  points[0].Date,
		Last:   points[0].Date,
	}
	for _, p := range points[1:] {
		if p.Price < summary.Min {
			summary.Min = p.Price
		}
		if p.Price > summary.Max {
			summary.Max = p.Price
		}
		if p.Date.Before(summary.First) {
			summary.First = p.Date
		}
		if p.Date.After(summary.Last) {
			summary.Last = p.Date
		}
	}

	return summary, nil
}

// FormatBound renders a reference line label such as "Min: 12.34"
func FormatBound(label string, value float64) string {
	return label + ": " + decimal.NewFromFloat(value).StringFixed(2)
}

// BuildPriceChart assembles the price chart for symbol.
// Target lines only contain dates where the target is present, and are omitted when empty.
func BuildPriceChart(symbol string, points []model.PricePoint, areas []ReferenceArea) (*PriceChart, error) {
	summary, err := Summarize(symbol, points)
	if err != nil {
		return nil, err
	}

	price := Line{Name: symbol + " Stock Prices", Color: colorPrice, Fill: true, Points: make([]Point, 0, len(points))}
	high := Line{Name: "High TP", Color: colorHighTP, Points: []Point{}}
	mid := Line{Name: "Mid TP", Color: colorMidTP, Points: []Point{}}
	low := Line{Name: "Low TP", Color: colorLowTP, Points: []Point{}}

	for _, p := range points {
		price.Points = append(price.Points, Point{Date: p.Date, Value: p.Price})
		if p.HighTP != nil {
			high.Points = append(high.Points, Point{Date: p.Date, Value: *p.HighTP})
		}
		if p.MidTP != nil {
			mid.Points = append(mid.Points, Point{Date: p.Date, Value: *p.MidTP})
		}
		if p.LowTP != nil {
			low.Points = append(low.Points, Point{Date: p.Date, Value: *p.LowTP})
		}
	}

	targets := make([]Line, 0, 3)
	for _, l := range []Line{high, mid, low} {
		if len(l.Points) > 0 {
			targets = append(targets, l)
		}
	}

	visible := make([]ReferenceArea, 0, len(areas))
	for _, a := range areas {
		if a.End.Before(summary.First) || a.Start.After(summary.Last) {
			continue
		}
		visible = append(visible, a)
	}

	return &PriceChart{
		Symbol:  symbol,
		Title:   symbol + " Stock Prices",
		Price:   price,
		Targets: targets,
		ReferenceLines: []ReferenceLine{
			{Label: FormatBound("Min", summary.Min), Value: summary.Min, Color: colorMinLine},
			{Label: FormatBound("Max", summary.Max), Value: summary.Max, Color: colorMaxLine},
		},
		ReferenceAreas: visible,
		Summary:        summary,
	}, nil
}
