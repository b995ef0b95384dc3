package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stocksuperhero/dashboard/internal/chart"
	"github.com/stocksuperhero/dashboard/internal/config"
	"github.com/stocksuperhero/dashboard/internal/model"

	"go.uber.org/zap"
)

type fakePrices struct {
	prices map[string][]model.PricePoint
	techs  map[string][]model.TechnicalPoint
}

func (f *fakePrices) ListPrices(_ context.Context, symbol string) ([]model.PricePoint, error) {
	return f.prices[symbol], nil
}

func (f *fakePrices) ListTechnicals(_ context.Context, symbol string) ([]model.TechnicalPoint, error) {
	return f.techs[symbol], nil
}

func newTestChartService(t *testing.T) *ChartService {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]model.PricePoint, 30)
	for i := range series {
		series[i] = model.PricePoint{Symbol: "AAPL", Date: start.AddDate(0, 0, i), Price: 180 + float64(i)}
	}
	prices := &fakePrices{
		prices: map[string][]model.PricePoint{"AAPL": series, "MSFT": series[:2]},
		techs: map[string][]model.TechnicalPoint{
			"MSFT": {{Date: start, MACD: 1, Signal: 0.5, Histogram: 0.5}},
		},
	}
	areas := []config.ReferenceArea{
		{Label: "ok", Start: "2024-01-05", End: "2024-01-07", Color: "#85e043"},
		{Label: "bad", Start: "yesterday", End: "2024-01-07"},
	}
	companies := newTestCompanyService(t, &fakeCompanySource{records: sampleCompanies()})

	return NewChartService(prices, companies, config.GaugeConfig{Min: 0, Max: 50}, areas, zap.NewNop())
}

func TestChartServiceHistory(t *testing.T) {
	svc := newTestChartService(t)

	h, err := svc.History(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if h.Symbol != "AAPL" || h.Summary.Min != 180 || h.Summary.Max != 209 {
		t.Errorf("History() = %+v", h.Summary)
	}

	if _, err := svc.History(context.Background(), "ZZZZ"); !errors.Is(err, ErrNoPriceData) {
		t.Errorf("error = %v, want ErrNoPriceData", err)
	}
}

func TestChartServicePriceChartKeepsValidAreas(t *testing.T) {
	svc := newTestChartService(t)

	c, err := svc.PriceChart(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("PriceChart() error = %v", err)
	}
	if len(c.ReferenceAreas) != 1 || c.ReferenceAreas[0].Label != "ok" {
		t.Errorf("ReferenceAreas = %+v", c.ReferenceAreas)
	}
}

func TestChartServiceMACDSource(t *testing.T) {
	svc := newTestChartService(t)
	ctx := context.Background()

	stored, err := svc.MACD(ctx, "MSFT")
	if err != nil {
		t.Fatalf("MACD(MSFT) error = %v", err)
	}
	if stored.Source != "stored" {
		t.Errorf("MSFT source = %q, want stored", stored.Source)
	}

	computed, err := svc.MACD(ctx, "AAPL")
	if err != nil {
		t.Fatalf("MACD(AAPL) error = %v", err)
	}
	if computed.Source != "computed" || len(computed.Histogram) != 30 {
		t.Errorf("AAPL macd = %s with %d rows", computed.Source, len(computed.Histogram))
	}

	if _, err := svc.MACD(ctx, "ZZZZ"); !errors.Is(err, ErrNoPriceData) {
		t.Errorf("error = %v, want ErrNoPriceData", err)
	}
}

func TestChartServiceGauge(t *testing.T) {
	svc := newTestChartService(t)
	view := sampleCompanies()[:3]

	g, err := svc.Gauge(view, "msft")
	if err != nil {
		t.Fatalf("Gauge() error = %v", err)
	}
	if g.Value != 12 || g.Band.Label != "Low" {
		t.Errorf("Gauge(MSFT) = %+v", g)
	}

	g, err = svc.Gauge(view, "")
	if err != nil {
		t.Fatalf("Gauge() error = %v", err)
	}
	if g.Value != 7.3333 {
		t.Errorf("mean gauge = %v, want 7.3333", g.Value)
	}

	if _, err := svc.Gauge(view, "XOM"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("error = %v, want ErrSymbolNotFound", err)
	}
	if _, err := svc.Gauge(sampleCompanies()[3:], ""); !errors.Is(err, chart.ErrNotEnoughData) {
		t.Errorf("error = %v, want ErrNotEnoughData", err)
	}
}

func TestChartServicePSBars(t *testing.T) {
	svc := newTestChartService(t)

	bars := svc.PSBars(sampleCompanies(), "sbux")
	if len(bars) != 3 {
		t.Fatalf("len(bars) = %d, want 3", len(bars))
	}
	if !bars[1].Selected || bars[0].Selected {
		t.Errorf("bars = %+v", bars)
	}
}
