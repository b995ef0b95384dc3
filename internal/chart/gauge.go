package chart

import (
	"math"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// needleLength is the hand length in the unit square the gauge is drawn in
var needleLength = math.Sqrt2 / 4

// Band is a labelled slice of the gauge dial
type Band struct {
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
}

// Gauge is a half-dial reading with its needle geometry
type Gauge struct {
	Title   string  `json:"title"`
	Caption string  `json:"caption"`
	Value   float64 `json:"value"`
	Shown   float64 `json:"shown"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Angle   float64 `json:"angle"`
	NeedleX float64 `json:"needle_x"`
	NeedleY float64 `json:"needle_y"`
	Band    Band    `json:"band"`
	Bands   []Band  `json:"bands"`
}

var bandTemplate = []struct {
	label string
	color string
}{
	{"Very low", "#2bad4e"},
	{"Low", "#85e043"},
	{"Medium", "#eff229"},
	{"High", "#f2a529"},
	{"Very high", "#f25829"},
}

// Bands splits [min, max] into the five equal gauge bands
func Bands(min, max float64) []Band {
	step := (max - min) / float64(len(bandTemplate))
	bands := make([]Band, len(bandTemplate))
	for i, t := range bandTemplate {
		bands[i] = Band{
			Label: t.label,
			From:  min + step*float64(i),
			To:    min + step*float64(i+1),
			Color: t.color,
		}
	}
	bands[len(bands)-1].To = max
	return bands
}

// NewGauge clamps value into [min, max] and computes the needle.
// The angle runs from pi at min to 0 at max.
func NewGauge(title string, value, min, max float64) Gauge {
	shown := math.Max(min, math.Min(max, value))
	ratio := 0.0
	if max > min {
		ratio = (shown - min) / (max - min)
	}
	angle := math.Pi * (1 - ratio)

	bands := Bands(min, max)
	idx := int(ratio * float64(len(bands)))
	if idx >= len(bands) {
		idx = len(bands) - 1
	}

	return Gauge{
		Title:   title,
		Caption: decimal.NewFromFloat(value).StringFixed(1) + "x",
		Value:   value,
		Shown:   shown,
		Min:     min,
		Max:     max,
		Angle:   angle,
		NeedleX: 0.5 + needleLength*math.Cos(angle),
		NeedleY: 0.5 + needleLength*math.Sin(angle),
		Band:    bands[idx],
		Bands:   bands,
	}
}

// MeanPS averages the Price/Sales values present in view.
// ok is false when no record carries a value.
func MeanPS(view []model.CompanyRecord) (mean float64, ok bool) {
	values := make([]decimal.Decimal, 0, len(view))
	for _, r := range view {
		if r.PriceToSales != nil {
			values = append(values, decimal.NewFromFloat(*r.PriceToSales))
		}
	}
	if len(values) == 0 {
		return 0, false
	}

	avg := decimal.Avg(values[0], values[1:]...)
	return avg.Round(4).InexactFloat64(), true
}
