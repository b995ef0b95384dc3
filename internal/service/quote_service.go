package service

import (
	"context"

	"github.com/stocksuperhero/dashboard/internal/model"
)

// QuoteSource fetches live quotes
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (*model.Quote, error)
}

// QuoteService serves live quotes for known symbols
type QuoteService struct {
	source    QuoteSource
	companies *CompanyService
}

// NewQuoteService creates a new quote service. A nil source disables quotes.
func NewQuoteService(source QuoteSource, companies *CompanyService) *QuoteService {
	return &QuoteService{source: source, companies: companies}
}

// Get returns the live quote of a symbol present in the company table
func (s *QuoteService) Get(ctx context.Context, symbol string) (*model.Quote, error) {
	if s.source == nil {
		return nil, ErrQuotesDisabled
	}
	rec, err := s.companies.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return s.source.GetQuote(ctx, rec.Symbol)
}
