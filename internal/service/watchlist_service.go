package service

import (
	"context"

	"github.com/stocksuperhero/dashboard/internal/chart"
	"github.com/stocksuperhero/dashboard/internal/events"
	"github.com/stocksuperhero/dashboard/internal/model"

	"go.uber.org/zap"
)

// MaxWatchlistSize caps the number of symbols on one watchlist
const MaxWatchlistSize = 200

// WatchlistStore persists watchlists
type WatchlistStore interface {
	Get(ctx context.Context, keyID int) (*model.Watchlist, error)
	Save(ctx context.Context, keyID int, symbols []string) (*model.Watchlist, error)
}

// WatchlistView is a watchlist with its entries resolved against the company table
type WatchlistView struct {
	model.Watchlist
	Entries []model.WatchlistEntry `json:"entries"`
}

// WatchlistService manages the per-key watchlist
type WatchlistService struct {
	store     WatchlistStore
	companies *CompanyService
	publisher events.Publisher
	topic     string
	logger    *zap.Logger
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(
	store WatchlistStore,
	companies *CompanyService,
	publisher events.Publisher,
	topic string,
	logger *zap.Logger,
) *WatchlistService {
	return &WatchlistService{
		store:     store,
		companies: companies,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// normalizeSymbols upper-cases, drops blanks and de-duplicates, keeping first-seen order
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		sym = NormalizeSymbol(sym)
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}

// Get returns the key's watchlist with company records attached
func (s *WatchlistService) Get(ctx context.Context, keyID int) (*WatchlistView, error) {
	wl, err := s.store.Get(ctx, keyID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, wl), nil
}

// Replace stores symbols as the whole watchlist. Unknown symbols are rejected.
func (s *WatchlistService) Replace(ctx context.Context, keyID int, symbols []string) (*WatchlistView, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) > MaxWatchlistSize {
		return nil, ErrWatchlistFull
	}
	for _, sym := range symbols {
		if _, err := s.companies.Lookup(ctx, sym); err != nil {
			return nil, err
		}
	}
	return s.save(ctx, keyID, symbols)
}

// Add appends symbol; adding a symbol already present is a no-op
func (s *WatchlistService) Add(ctx context.Context, keyID int, symbol string) (*WatchlistView, error) {
	rec, err := s.companies.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	wl, err := s.store.Get(ctx, keyID)
	if err != nil {
		return nil, err
	}
	for _, sym := range wl.Symbols {
		if sym == rec.Symbol {
			return s.resolve(ctx, wl), nil
		}
	}

	if len(wl.Symbols) >= MaxWatchlistSize {
		return nil, ErrWatchlistFull
	}

	return s.save(ctx, keyID, append(wl.Symbols, rec.Symbol))
}

// Remove drops symbol; removing a symbol not present is a no-op
func (s *WatchlistService) Remove(ctx context.Context, keyID int, symbol string) (*WatchlistView, error) {
	symbol = NormalizeSymbol(symbol)

	wl, err := s.store.Get(ctx, keyID)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(wl.Symbols))
	for _, sym := range wl.Symbols {
		if sym != symbol {
			kept = append(kept, sym)
		}
	}
	if len(kept) == len(wl.Symbols) {
		return s.resolve(ctx, wl), nil
	}

	return s.save(ctx, keyID, kept)
}

// TickerTape returns the ticker tape widget config for the key's watchlist
func (s *WatchlistService) TickerTape(ctx context.Context, keyID int) (*chart.TickerTape, error) {
	view, err := s.Get(ctx, keyID)
	if err != nil {
		return nil, err
	}
	tape := chart.NewTickerTape(view.Entries)
	return &tape, nil
}

func (s *WatchlistService) save(ctx context.Context, keyID int, symbols []string) (*WatchlistView, error) {
	wl, err := s.store.Save(ctx, keyID, symbols)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		msg := events.NewMessage(events.Event{
			Type:  events.TypeWatchlistUpdated,
			KeyID: keyID,
			Data:  map[string]interface{}{"symbols": symbols},
		})
		if err := s.publisher.Publish(ctx, s.topic, msg); err != nil {
			s.logger.Warn("failed to publish watchlist event", zap.Int("key_id", keyID), zap.Error(err))
		}
	}

	return s.resolve(ctx, wl), nil
}

func (s *WatchlistService) resolve(ctx context.Context, wl *model.Watchlist) *WatchlistView {
	records, err := s.companies.LookupMany(ctx, wl.Symbols)
	if err != nil {
		s.logger.Warn("failed to resolve watchlist companies", zap.Int("key_id", wl.KeyID), zap.Error(err))
	}

	entries := make([]model.WatchlistEntry, 0, len(wl.Symbols))
	for _, sym := range wl.Symbols {
		entry := model.WatchlistEntry{Symbol: sym}
		if rec, ok := records[sym]; ok {
			entry.Company = &rec
		}
		entries = append(entries, entry)
	}
	return &WatchlistView{Watchlist: *wl, Entries: entries}
}
