package model

import (
	"time"
)

// Watchlist is the persisted list of symbols for an access key
type Watchlist struct {
	KeyID     int        `json:"key_id"`
	Symbols   []string   `json:"symbols"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// WatchlistUpdate replaces the whole watchlist
type WatchlistUpdate struct {
	Symbols []string `json:"symbols" binding:"max=200,dive,required"`
}

// WatchlistEntry is a watchlist symbol joined with its company record
type WatchlistEntry struct {
	Symbol  string         `json:"symbol"`
	Company *CompanyRecord `json:"company,omitempty"`
}

// FilterUpdate replaces one dimension of the filter state
type FilterUpdate struct {
	Values []string `json:"values" binding:"required"`
}
