package model

import (
	"time"
)

// PricePoint is one row of the fact table for a symbol
type PricePoint struct {
	Symbol string    `json:"symbol" db:"sym"`
	Date   time.Time `json:"date" db:"dt_st"`
	Price  float64   `json:"price" db:"p"`
	HighTP *float64  `json:"high_tp,omitempty" db:"high_tp"`
	MidTP  *float64  `json:"mid_tp,omitempty" db:"mid_tp"`
	LowTP  *float64  `json:"low_tp,omitempty" db:"low_tp"`
}

// TechnicalPoint holds precomputed MACD values for a date
type TechnicalPoint struct {
	Date      time.Time `json:"date" db:"dt_st"`
	MACD      float64   `json:"macd" db:"md"`
	Signal    float64   `json:"signal" db:"mds"`
	Histogram float64   `json:"histogram" db:"mdh"`
}

// PriceSummary is the min/max envelope of a price series
type PriceSummary struct {
	Symbol string    `json:"symbol"`
	Count  int       `json:"count"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	First  time.Time `json:"first"`
	Last   time.Time `json:"last"`
}

// Quote is a live quote for a symbol
type Quote struct {
	Symbol        string  `json:"symbol"`
	ShortName     string  `json:"short_name,omitempty"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency,omitempty"`
	MarketState   string  `json:"market_state,omitempty"`
}
