package chart

import (
	"github.com/stocksuperhero/dashboard/internal/model"
)

const (
	colorBar         = "#4682b4"
	colorBarSelected = "#ffa500"
)

// Bar is one symbol's Price/Sales bar
type Bar struct {
	Symbol   string  `json:"symbol"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
	Selected bool    `json:"selected"`
}

// PSBars builds one bar per view record with a Price/Sales value, in view order.
// The selected symbol is highlighted.
func PSBars(view []model.CompanyRecord, selected string) []Bar {
	bars := make([]Bar, 0, len(view))
	for _, r := range view {
		if r.PriceToSales == nil {
			continue
		}
		b := Bar{Symbol: r.Symbol, Value: *r.PriceToSales, Color: colorBar}
		if r.Symbol == selected {
			b.Color = colorBarSelected
			b.Selected = true
		}
		bars = append(bars, b)
	}
	return bars
}
