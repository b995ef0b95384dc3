package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stocksuperhero/dashboard/internal/events"
	"github.com/stocksuperhero/dashboard/internal/model"

	"go.uber.org/zap"
)

type fakeWatchlists struct {
	lists map[int][]string
	saves int
}

func (f *fakeWatchlists) Get(_ context.Context, keyID int) (*model.Watchlist, error) {
	symbols := append([]string{}, f.lists[keyID]...)
	return &model.Watchlist{KeyID: keyID, Symbols: symbols}, nil
}

func (f *fakeWatchlists) Save(_ context.Context, keyID int, symbols []string) (*model.Watchlist, error) {
	f.saves++
	f.lists[keyID] = append([]string{}, symbols...)
	return &model.Watchlist{KeyID: keyID, Symbols: symbols}, nil
}

func newTestWatchlistService(t *testing.T) (*WatchlistService, *fakeWatchlists, *recordingPublisher) {
	t.Helper()
	store := &fakeWatchlists{lists: map[int][]string{}}
	pub := &recordingPublisher{}
	companies := newTestCompanyService(t, &fakeCompanySource{records: sampleCompanies()})
	return NewWatchlistService(store, companies, pub, "watchlists", zap.NewNop()), store, pub
}

func TestWatchlistAddRemove(t *testing.T) {
	svc, store, pub := newTestWatchlistService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, 1, "aapl"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	view, err := svc.Add(ctx, 1, "AAPL")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !reflect.DeepEqual(view.Symbols, []string{"AAPL"}) || store.saves != 1 {
		t.Errorf("symbols = %v after %d saves", view.Symbols, store.saves)
	}
	if view.Entries[0].Company == nil || view.Entries[0].Company.CompanyName != "Apple Inc." {
		t.Errorf("entry = %+v", view.Entries[0])
	}

	if _, err := svc.Add(ctx, 1, "NOPE"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("Add(NOPE) error = %v, want ErrSymbolNotFound", err)
	}

	view, err = svc.Remove(ctx, 1, "aapl")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(view.Symbols) != 0 {
		t.Errorf("symbols after remove = %v", view.Symbols)
	}

	if got := pub.eventTypes(); len(got) != 2 || got[0] != events.TypeWatchlistUpdated {
		t.Errorf("published = %v", got)
	}
}

func TestWatchlistReplace(t *testing.T) {
	svc, _, _ := newTestWatchlistService(t)
	ctx := context.Background()

	view, err := svc.Replace(ctx, 2, []string{"msft", " SBUX", "MSFT", ""})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if want := []string{"MSFT", "SBUX"}; !reflect.DeepEqual(view.Symbols, want) {
		t.Errorf("symbols = %v, want %v", view.Symbols, want)
	}

	if _, err := svc.Replace(ctx, 2, []string{"MSFT", "NOPE"}); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("Replace() error = %v, want ErrSymbolNotFound", err)
	}

	tape, err := svc.TickerTape(ctx, 2)
	if err != nil {
		t.Fatalf("TickerTape() error = %v", err)
	}
	if len(tape.Symbols) != 2 || tape.Symbols[0].ProName != "NASDAQ:MSFT" {
		t.Errorf("tape = %+v", tape.Symbols)
	}
}

func TestQuoteServiceDisabled(t *testing.T) {
	companies := newTestCompanyService(t, &fakeCompanySource{records: sampleCompanies()})
	svc := NewQuoteService(nil, companies)

	if _, err := svc.Get(context.Background(), "AAPL"); !errors.Is(err, ErrQuotesDisabled) {
		t.Errorf("error = %v, want ErrQuotesDisabled", err)
	}
}

func TestWatchlistResolvesSymbolsOutsideSnapshot(t *testing.T) {
	source := &fakeCompanySource{records: sampleCompanies()}
	companies := newTestCompanyService(t, source)
	store := &fakeWatchlists{lists: map[int][]string{3: {"AAPL", "NVDA", "GONE"}}}
	svc := NewWatchlistService(store, companies, nil, "watchlists", zap.NewNop())
	ctx := context.Background()

	if _, err := companies.Records(ctx); err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	source.add(model.CompanyRecord{Symbol: "NVDA", CompanyName: "NVIDIA"})

	view, err := svc.Get(ctx, 3)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(view.Entries) != 3 {
		t.Fatalf("entries = %+v", view.Entries)
	}
	if view.Entries[1].Company == nil || view.Entries[1].Company.CompanyName != "NVIDIA" {
		t.Errorf("NVDA entry = %+v", view.Entries[1])
	}
	if view.Entries[0].Company == nil || view.Entries[2].Company != nil {
		t.Errorf("entries = %+v", view.Entries)
	}
}
