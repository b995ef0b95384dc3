package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stocksuperhero/dashboard/internal/events"
	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/search"
	"github.com/stocksuperhero/dashboard/internal/storage"

	"go.uber.org/zap"
)

func f(v float64) *float64 { return &v }

func sampleCompanies() []model.CompanyRecord {
	return []model.CompanyRecord{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", Sector: "Tech", Industry: "Hardware", ClassificationTag: "High", Exchange: "NASDAQ", PriceToSales: f(7.5)},
		{Symbol: "SBUX", CompanyName: "Starbucks", Sector: "Consumer", Industry: "Restaurants", ClassificationTag: "Low", Exchange: "NASDAQ", PriceToSales: f(2.5)},
		{Symbol: "MSFT", CompanyName: "Microsoft", Sector: "Tech", Industry: "Software", ClassificationTag: "High", Exchange: "NASDAQ", PriceToSales: f(12)},
		{Symbol: "BRKN", CompanyName: "Broken Row", Sector: "", Industry: "Unknown", ClassificationTag: "Low"},
	}
}

type fakeCompanySource struct {
	mu        sync.Mutex
	records   []model.CompanyRecord
	failTimes int
	calls     int
	lookups   int
}

func (f *fakeCompanySource) List(context.Context) ([]model.CompanyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failTimes {
		return nil, errors.New("connection refused")
	}
	out := make([]model.CompanyRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeCompanySource) GetBySymbol(_ context.Context, symbol string) (*model.CompanyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	for _, r := range f.records {
		if r.Symbol == symbol {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanySource) ListBySymbols(_ context.Context, symbols []string) ([]model.CompanyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	out := make([]model.CompanyRecord, 0, len(symbols))
	for _, r := range f.records {
		for _, sym := range symbols {
			if r.Symbol == sym {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeCompanySource) add(rec model.CompanyRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
}

type fakeSimilarity struct {
	gotSymbol string
	gotLimit  int
}

func (f *fakeSimilarity) FindSimilar(_ context.Context, symbol string, limit int) ([]model.SimilarCompany, error) {
	f.gotSymbol = symbol
	f.gotLimit = limit
	return []model.SimilarCompany{{Symbol: "MSFT", ValuationSim: 0.9}}, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	topics   []string
	messages []events.Message
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, msg events.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Value.(events.Event).Type)
	}
	return out
}

func newTestCompanyService(t *testing.T, source *fakeCompanySource) *CompanyService {
	t.Helper()
	idx, err := search.NewIndex()
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	return NewCompanyService(
		source,
		&fakeSimilarity{},
		idx,
		storage.NewPublicLogoResolver("https://cdn.example.com/logos"),
		nil,
		time.Hour,
		zap.NewNop(),
	)
}
