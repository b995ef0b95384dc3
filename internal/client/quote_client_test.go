package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piquette/finance-go"
	"go.uber.org/zap"
)

func TestGetQuote(t *testing.T) {
	c := NewQuoteClient(time.Second, zap.NewNop())
	c.fetch = func(symbol string) (*finance.Quote, error) {
		if symbol != "AAPL" {
			t.Errorf("fetch(%q), want upper-cased AAPL", symbol)
		}
		return &finance.Quote{
			Symbol:                     "AAPL",
			ShortName:                  "Apple Inc.",
			RegularMarketPrice:         190.5,
			RegularMarketChange:        1.25,
			RegularMarketChangePercent: 0.66,
			CurrencyID:                 "USD",
		}, nil
	}

	q, err := c.GetQuote(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if q.Price != 190.5 || q.ShortName != "Apple Inc." || q.Currency != "USD" {
		t.Errorf("GetQuote() = %+v", q)
	}
}

func TestGetQuoteNotFound(t *testing.T) {
	c := NewQuoteClient(time.Second, zap.NewNop())
	c.fetch = func(string) (*finance.Quote, error) { return nil, nil }

	if _, err := c.GetQuote(context.Background(), "NOPE"); !errors.Is(err, ErrQuoteNotFound) {
		t.Errorf("error = %v, want ErrQuoteNotFound", err)
	}
}

func TestGetQuoteTimeout(t *testing.T) {
	c := NewQuoteClient(10*time.Millisecond, zap.NewNop())
	release := make(chan struct{})
	defer close(release)
	c.fetch = func(string) (*finance.Quote, error) {
		<-release
		return nil, nil
	}

	if _, err := c.GetQuote(context.Background(), "SLOW"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want DeadlineExceeded", err)
	}
}
