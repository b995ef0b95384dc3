package chart

import (
	"github.com/stocksuperhero/dashboard/internal/model"
)

// TickerSymbol is one entry of the ticker tape widget
type TickerSymbol struct {
	ProName string `json:"proName"`
	Title   string `json:"title"`
}

// TickerTape is the embeddable ticker tape widget configuration
type TickerTape struct {
	Symbols        []TickerSymbol `json:"symbols"`
	ShowSymbolLogo bool           `json:"showSymbolLogo"`
	IsTransparent  bool           `json:"isTransparent"`
	ColorTheme     string         `json:"colorTheme"`
	DisplayMode    string         `json:"displayMode"`
	Locale         string         `json:"locale"`
}

// NewTickerTape builds the widget config for watchlist entries, in order.
// Entries without a known company fall back to the bare symbol.
func NewTickerTape(entries []model.WatchlistEntry) TickerTape {
	symbols := make([]TickerSymbol, 0, len(entries))
	for _, e := range entries {
		ts := TickerSymbol{ProName: e.Symbol, Title: e.Symbol}
		if e.Company != nil {
			if e.Company.Exchange != "" {
				ts.ProName = e.Company.Exchange + ":" + e.Symbol
			}
			if e.Company.CompanyName != "" {
				ts.Title = e.Company.CompanyName
			}
		}
		symbols = append(symbols, ts)
	}

	return TickerTape{
		Symbols:        symbols,
		ShowSymbolLogo: true,
		IsTransparent:  true,
		ColorTheme:     "dark",
		DisplayMode:    "adaptive",
		Locale:         "en",
	}
}
