package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/search"
	"github.com/stocksuperhero/dashboard/internal/storage"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const snapshotCacheKey = "dashboard:companies"

// DefaultSimilarLimit is the number of similar companies returned when no limit is given
const DefaultSimilarLimit = 100

// CompanySource loads the company dimension table. GetBySymbol returns nil
// for an unknown symbol.
type CompanySource interface {
	List(ctx context.Context) ([]model.CompanyRecord, error)
	GetBySymbol(ctx context.Context, symbol string) (*model.CompanyRecord, error)
	ListBySymbols(ctx context.Context, symbols []string) ([]model.CompanyRecord, error)
}

// SimilaritySource ranks companies by embedding similarity
type SimilaritySource interface {
	FindSimilar(ctx context.Context, symbol string, limit int) ([]model.SimilarCompany, error)
}

// CompanyService owns the in-process company snapshot. The snapshot is loaded
// once and replaced only by Refresh.
type CompanyService struct {
	source      CompanySource
	similarity  SimilaritySource
	index       *search.Index
	logos       storage.LogoResolver
	redisClient *redis.Client
	snapshotTTL time.Duration
	logger      *zap.Logger

	mu       sync.RWMutex
	records  []model.CompanyRecord
	bySymbol map[string]int
	loaded   bool
	loadedAt time.Time

	loadMu sync.Mutex
}

// NewCompanyService creates a new company service. redisClient may be nil.
func NewCompanyService(
	source CompanySource,
	similarity SimilaritySource,
	index *search.Index,
	logos storage.LogoResolver,
	redisClient *redis.Client,
	snapshotTTL time.Duration,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		source:      source,
		similarity:  similarity,
		index:       index,
		logos:       logos,
		redisClient: redisClient,
		snapshotTTL: snapshotTTL,
		logger:      logger,
	}
}

// Records returns the current snapshot, loading it on first use.
// The returned slice is shared and must not be modified.
func (s *CompanyService) Records(ctx context.Context) ([]model.CompanyRecord, error) {
	s.mu.RLock()
	if s.loaded {
		records := s.records
		s.mu.RUnlock()
		return records, nil
	}
	s.mu.RUnlock()

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	if s.loaded {
		records := s.records
		s.mu.RUnlock()
		return records, nil
	}
	s.mu.RUnlock()

	if records, ok := s.readCache(ctx); ok {
		if err := s.install(records); err != nil {
			return nil, err
		}
		return records, nil
	}

	records, err := s.loadFromSource(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.install(records); err != nil {
		return nil, err
	}
	s.writeCache(ctx, records)

	return records, nil
}

// Refresh reloads the snapshot from the database and returns the record count
func (s *CompanyService) Refresh(ctx context.Context) (int, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	records, err := s.loadFromSource(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.install(records); err != nil {
		return 0, err
	}
	s.writeCache(ctx, records)

	s.logger.Info("company snapshot refreshed", zap.Int("records", len(records)))
	return len(records), nil
}

// LoadedAt returns when the current snapshot was installed
func (s *CompanyService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *CompanyService) loadFromSource(ctx context.Context) ([]model.CompanyRecord, error) {
	var records []model.CompanyRecord

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = 10 * time.Second

	operation := func() error {
		var err error
		records, err = s.source.List(ctx)
		return err
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("failed to load companies, retrying", zap.Duration("wait", wait), zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		s.logger.Error("failed to load companies", zap.Error(err))
		return nil, err
	}
	if records == nil {
		records = []model.CompanyRecord{}
	}
	return records, nil
}

func (s *CompanyService) install(records []model.CompanyRecord) error {
	if s.index != nil {
		if err := s.index.Rebuild(records); err != nil {
			s.logger.Error("failed to rebuild search index", zap.Error(err))
			return err
		}
	}

	bySymbol := make(map[string]int, len(records))
	for i, r := range records {
		if _, exists := bySymbol[r.Symbol]; !exists && r.Symbol != "" {
			bySymbol[r.Symbol] = i
		}
	}

	s.mu.Lock()
	s.records = records
	s.bySymbol = bySymbol
	s.loaded = true
	s.loadedAt = time.Now()
	s.mu.Unlock()

	return nil
}

func (s *CompanyService) readCache(ctx context.Context) ([]model.CompanyRecord, bool) {
	if s.redisClient == nil {
		return nil, false
	}

	data, err := s.redisClient.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("failed to read company snapshot cache", zap.Error(err))
		}
		return nil, false
	}

	var records []model.CompanyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("failed to decode company snapshot cache", zap.Error(err))
		return nil, false
	}
	return records, true
}

func (s *CompanyService) writeCache(ctx context.Context, records []model.CompanyRecord) {
	if s.redisClient == nil {
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		s.logger.Warn("failed to encode company snapshot", zap.Error(err))
		return
	}
	if err := s.redisClient.Set(ctx, snapshotCacheKey, data, s.snapshotTTL).Err(); err != nil {
		s.logger.Warn("failed to cache company snapshot", zap.Error(err))
	}
}

// Lookup returns the record for symbol, or ErrSymbolNotFound. Symbols missing
// from the snapshot are read from the source, so rows added since the last
// Refresh still resolve.
func (s *CompanyService) Lookup(ctx context.Context, symbol string) (*model.CompanyRecord, error) {
	if _, err := s.Records(ctx); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}
	if rec, ok := s.cached(symbol); ok {
		return &rec, nil
	}

	rec, err := s.source.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrSymbolNotFound
	}
	s.logger.Debug("company resolved outside snapshot", zap.String("symbol", symbol))
	return rec, nil
}

// LookupMany resolves symbols to records. Snapshot misses are fetched from the
// source in one query; symbols unknown to both are absent from the result.
func (s *CompanyService) LookupMany(ctx context.Context, symbols []string) (map[string]model.CompanyRecord, error) {
	if _, err := s.Records(ctx); err != nil {
		return nil, err
	}

	found := make(map[string]model.CompanyRecord, len(symbols))
	missing := make([]string, 0)
	for _, sym := range symbols {
		sym = NormalizeSymbol(sym)
		if sym == "" {
			continue
		}
		if rec, ok := s.cached(sym); ok {
			found[sym] = rec
			continue
		}
		missing = append(missing, sym)
	}
	if len(missing) == 0 {
		return found, nil
	}

	records, err := s.source.ListBySymbols(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		found[rec.Symbol] = rec
	}
	return found, nil
}

func (s *CompanyService) cached(symbol string) (model.CompanyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.bySymbol[symbol]
	if !ok {
		return model.CompanyRecord{}, false
	}
	return s.records[i], true
}

// Rows decorates view records with their selector label and logo URL
func (s *CompanyService) Rows(ctx context.Context, view []model.CompanyRecord) []model.CompanyRow {
	rows := make([]model.CompanyRow, 0, len(view))
	for _, r := range view {
		row := model.CompanyRow{CompanyRecord: r, Label: r.Label()}
		if s.logos != nil && r.Symbol != "" {
			url, err := s.logos.URL(ctx, r.Symbol)
			if err != nil {
				s.logger.Debug("failed to resolve logo", zap.String("symbol", r.Symbol), zap.Error(err))
			}
			row.LogoURL = url
		}
		rows = append(rows, row)
	}
	return rows
}

// Search runs a text search restricted to the symbols in view, in relevance order
func (s *CompanyService) Search(ctx context.Context, q string, view []model.CompanyRecord) ([]model.CompanyRecord, error) {
	if _, err := s.Records(ctx); err != nil {
		return nil, err
	}
	if s.index == nil {
		return []model.CompanyRecord{}, nil
	}

	bySymbol := make(map[string]int, len(view))
	within := make([]string, 0, len(view))
	for i, r := range view {
		if _, dup := bySymbol[r.Symbol]; dup || r.Symbol == "" {
			continue
		}
		bySymbol[r.Symbol] = i
		within = append(within, r.Symbol)
	}

	symbols, err := s.index.Search(q, within, 0)
	if err != nil {
		return nil, err
	}

	results := make([]model.CompanyRecord, 0, len(symbols))
	for _, sym := range symbols {
		if i, ok := bySymbol[sym]; ok {
			results = append(results, view[i])
		}
	}
	return results, nil
}

// Similar returns companies ranked by valuation similarity to symbol
func (s *CompanyService) Similar(ctx context.Context, symbol string, limit int) ([]model.SimilarCompany, error) {
	rec, err := s.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > DefaultSimilarLimit {
		limit = DefaultSimilarLimit
	}
	return s.similarity.FindSimilar(ctx, rec.Symbol, limit)
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
