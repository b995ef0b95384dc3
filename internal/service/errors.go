package service

import "errors"

var (
	// ErrInvalidAccessKey is returned when no active key matches the supplied secret
	ErrInvalidAccessKey = errors.New("invalid access key")
	// ErrSessionNotFound is returned for expired, deleted or unknown sessions
	ErrSessionNotFound = errors.New("session not found")
	// ErrSymbolNotFound is returned for symbols missing from the company table
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrNoPriceData is returned when a symbol has no price history
	ErrNoPriceData = errors.New("no price data")
	// ErrQuotesDisabled is returned when live quotes are switched off
	ErrQuotesDisabled = errors.New("live quotes are disabled")
	// ErrUnknownDimension is returned for a selector other than the three supported ones
	ErrUnknownDimension = errors.New("unknown filter dimension")
	// ErrWatchlistFull is returned when a watchlist would exceed MaxWatchlistSize
	ErrWatchlistFull = errors.New("watchlist is full")
)
