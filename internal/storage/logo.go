package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/stocksuperhero/dashboard/internal/config"
)

// LogoResolver returns the URL of a company logo
type LogoResolver interface {
	URL(ctx context.Context, symbol string) (string, error)
}

// NewLogoResolver creates a resolver based on the configuration
func NewLogoResolver(cfg config.StorageConfig) (LogoResolver, error) {
	switch cfg.Type {
	case "s3":
		return NewS3LogoResolver(cfg)
	default:
		return NewPublicLogoResolver(cfg.PublicBaseURL), nil
	}
}

// logoKey is the object name of a symbol's logo, e.g. "AAPL.svg"
func logoKey(prefix, symbol string) string {
	return prefix + strings.ToUpper(symbol) + ".svg"
}

// PublicLogoResolver builds URLs against a public bucket or CDN
type PublicLogoResolver struct {
	baseURL string
}

// NewPublicLogoResolver creates a resolver rooted at baseURL
func NewPublicLogoResolver(baseURL string) *PublicLogoResolver {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &PublicLogoResolver{baseURL: baseURL}
}

// URL returns baseURL + SYMBOL.svg, or "" when no base URL is configured
func (p *PublicLogoResolver) URL(_ context.Context, symbol string) (string, error) {
	if p.baseURL == "" || symbol == "" {
		return "", nil
	}
	return logoKey(p.baseURL, symbol), nil
}

// errEmptySymbol is returned for logo lookups without a symbol
var errEmptySymbol = errors.New("symbol is required")
