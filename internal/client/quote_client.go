package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
	"go.uber.org/zap"
)

// ErrQuoteNotFound is returned when the quote source knows nothing about a symbol
var ErrQuoteNotFound = errors.New("quote not found")

// QuoteClient fetches live quotes from Yahoo Finance
type QuoteClient struct {
	timeout time.Duration
	fetch   func(symbol string) (*finance.Quote, error)
	logger  *zap.Logger
}

// NewQuoteClient creates a new quote client
func NewQuoteClient(timeout time.Duration, logger *zap.Logger) *QuoteClient {
	return &QuoteClient{
		timeout: timeout,
		fetch:   quote.Get,
		logger:  logger,
	}
}

type quoteResult struct {
	q   *finance.Quote
	err error
}

// GetQuote returns the latest quote for symbol. The upstream call has no context
// support, so it runs in a goroutine and is abandoned on timeout or cancellation.
func (c *QuoteClient) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan quoteResult, 1)
	go func() {
		q, err := c.fetch(symbol)
		done <- quoteResult{q: q, err: err}
	}()

	select {
	case <-ctx.Done():
		c.logger.Warn("quote request timed out", zap.String("symbol", symbol), zap.Error(ctx.Err()))
		return nil, fmt.Errorf("quote %s: %w", symbol, ctx.Err())
	case res := <-done:
		if res.err != nil {
			c.logger.Error("failed to get quote", zap.String("symbol", symbol), zap.Error(res.err))
			return nil, fmt.Errorf("quote %s: %w", symbol, res.err)
		}
		if res.q == nil {
			return nil, ErrQuoteNotFound
		}
		return toQuote(res.q), nil
	}
}

func toQuote(q *finance.Quote) *model.Quote {
	return &model.Quote{
		Symbol:        q.Symbol,
		ShortName:     q.ShortName,
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		Currency:      q.CurrencyID,
		MarketState:   string(q.MarketState),
	}
}
