package service

import (
	"context"
	"time"

	"github.com/stocksuperhero/dashboard/internal/chart"
	"github.com/stocksuperhero/dashboard/internal/config"
	"github.com/stocksuperhero/dashboard/internal/model"

	"go.uber.org/zap"
)

const gaugeTitle = "Price / Sales"

// PriceSource loads per-symbol time series
type PriceSource interface {
	ListPrices(ctx context.Context, symbol string) ([]model.PricePoint, error)
	ListTechnicals(ctx context.Context, symbol string) ([]model.TechnicalPoint, error)
}

// PriceHistory is a symbol's price rows with their envelope
type PriceHistory struct {
	Symbol  string             `json:"symbol"`
	Points  []model.PricePoint `json:"points"`
	Summary model.PriceSummary `json:"summary"`
}

// ChartService builds chart data for the detail panel and the view-wide charts
type ChartService struct {
	prices    PriceSource
	companies *CompanyService
	gauge     config.GaugeConfig
	areas     []chart.ReferenceArea
	logger    *zap.Logger
}

// NewChartService creates a new chart service. Reference areas with unparseable dates are skipped.
func NewChartService(
	prices PriceSource,
	companies *CompanyService,
	gauge config.GaugeConfig,
	areas []config.ReferenceArea,
	logger *zap.Logger,
) *ChartService {
	return &ChartService{
		prices:    prices,
		companies: companies,
		gauge:     gauge,
		areas:     parseReferenceAreas(areas, logger),
		logger:    logger,
	}
}

func parseReferenceAreas(areas []config.ReferenceArea, logger *zap.Logger) []chart.ReferenceArea {
	out := make([]chart.ReferenceArea, 0, len(areas))
	for _, a := range areas {
		start, err := time.Parse("2006-01-02", a.Start)
		if err != nil {
			logger.Warn("invalid reference area start", zap.String("label", a.Label), zap.Error(err))
			continue
		}
		end, err := time.Parse("2006-01-02", a.End)
		if err != nil {
			logger.Warn("invalid reference area end", zap.String("label", a.Label), zap.Error(err))
			continue
		}
		out = append(out, chart.ReferenceArea{Label: a.Label, Start: start, End: end, Color: a.Color})
	}
	return out
}

// History returns the price rows of symbol.
// Unknown symbols and symbols without rows both yield ErrNoPriceData.
func (s *ChartService) History(ctx context.Context, symbol string) (*PriceHistory, error) {
	symbol = NormalizeSymbol(symbol)

	points, err := s.prices.ListPrices(ctx, symbol)
	if err != nil {
		return nil, err
	}
	summary, err := chart.Summarize(symbol, points)
	if err != nil {
		return nil, ErrNoPriceData
	}

	return &PriceHistory{Symbol: symbol, Points: points, Summary: summary}, nil
}

// PriceChart returns the price area chart of symbol
func (s *ChartService) PriceChart(ctx context.Context, symbol string) (*chart.PriceChart, error) {
	history, err := s.History(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return chart.BuildPriceChart(history.Symbol, history.Points, s.areas)
}

// MACD returns stored MACD rows for symbol, computing them from prices when none are stored
func (s *ChartService) MACD(ctx context.Context, symbol string) (*chart.MACDChart, error) {
	symbol = NormalizeSymbol(symbol)

	rows, err := s.prices.ListTechnicals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return chart.BuildMACDChart(symbol, "stored", rows)
	}

	history, err := s.History(ctx, symbol)
	if err != nil {
		return nil, err
	}
	rows, err = chart.ComputeMACD(history.Points)
	if err != nil {
		return nil, err
	}
	return chart.BuildMACDChart(symbol, "computed", rows)
}

// PSBars returns the Price/Sales bars of a view with selected highlighted
func (s *ChartService) PSBars(view []model.CompanyRecord, selected string) []chart.Bar {
	return chart.PSBars(view, NormalizeSymbol(selected))
}

// Gauge reads the selected symbol's Price/Sales, or the view mean when nothing is selected.
// Returns ErrSymbolNotFound when selected is not in view and chart.ErrNotEnoughData
// when there is no value to show.
func (s *ChartService) Gauge(view []model.CompanyRecord, selected string) (*chart.Gauge, error) {
	selected = NormalizeSymbol(selected)

	var value float64
	if selected != "" {
		var rec *model.CompanyRecord
		for i := range view {
			if view[i].Symbol == selected {
				rec = &view[i]
				break
			}
		}
		if rec == nil {
			return nil, ErrSymbolNotFound
		}
		if rec.PriceToSales == nil {
			return nil, chart.ErrNotEnoughData
		}
		value = *rec.PriceToSales
	} else {
		mean, ok := chart.MeanPS(view)
		if !ok {
			return nil, chart.ErrNotEnoughData
		}
		value = mean
	}

	g := chart.NewGauge(gaugeTitle, value, s.gauge.Min, s.gauge.Max)
	return &g, nil
}
