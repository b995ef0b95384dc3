package chart

import (
	"github.com/stocksuperhero/dashboard/internal/model"
)

// Standard MACD periods
const (
	FastPeriod   = 12
	SlowPeriod   = 26
	SignalPeriod = 9
)

// MACDChart holds the MACD line, signal line and histogram
type MACDChart struct {
	Symbol    string  `json:"symbol"`
	Source    string  `json:"source"`
	MACD      Line    `json:"macd"`
	Signal    Line    `json:"signal"`
	Histogram []Point `json:"histogram"`
}

// ema is an exponential moving average seeded with the first value,
// with smoothing 2/(period+1).
func ema(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// ComputeMACD derives MACD rows from closing prices ordered by date
func ComputeMACD(points []model.PricePoint) ([]model.TechnicalPoint, error) {
	if len(points) < 2 {
		return nil, ErrNotEnoughData
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Price
	}

	fast := ema(closes, FastPeriod)
	slow := ema(closes, SlowPeriod)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal := ema(macd, SignalPeriod)

	rows := make([]model.TechnicalPoint, len(points))
	for i, p := range points {
		rows[i] = model.TechnicalPoint{
			Date:      p.Date,
			MACD:      macd[i],
			Signal:    signal[i],
			Histogram: macd[i] - signal[i],
		}
	}
	return rows, nil
}

// BuildMACDChart shapes technical rows for drawing. source names where the rows came from.
func BuildMACDChart(symbol, source string, rows []model.TechnicalPoint) (*MACDChart, error) {
	if len(rows) == 0 {
		return nil, ErrNotEnoughData
	}

	c := &MACDChart{
		Symbol:    symbol,
		Source:    source,
		MACD:      Line{Name: "MACD Line", Color: "#000000", Points: make([]Point, 0, len(rows))},
		Signal:    Line{Name: "Signal Line", Color: "#eeaf12", Fill: true, Points: make([]Point, 0, len(rows))},
		Histogram: make([]Point, 0, len(rows)),
	}
	for _, r := range rows {
		c.MACD.Points = append(c.MACD.Points, Point{Date: r.Date, Value: r.MACD})
		c.Signal.Points = append(c.Signal.Points, Point{Date: r.Date, Value: r.Signal})
		c.Histogram = append(c.Histogram, Point{Date: r.Date, Value: r.Histogram})
	}
	return c, nil
}
