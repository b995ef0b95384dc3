// Package search provides the in-memory bleve index behind the company
// search box.
package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit caps the number of hits returned by an unrestricted Search
const DefaultLimit = 100

type companyDoc struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// Index is a rebuildable symbol/name index. Document ids are symbols.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
}

// NewIndex creates an empty in-memory index
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	companyMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = true
	textFieldMapping.Index = true
	companyMapping.AddFieldMappingsAt("symbol", textFieldMapping)
	companyMapping.AddFieldMappingsAt("name", textFieldMapping)
	companyMapping.AddFieldMappingsAt("sector", textFieldMapping)
	companyMapping.AddFieldMappingsAt("industry", textFieldMapping)

	indexMapping.AddDocumentMapping("_default", companyMapping)
	return indexMapping
}

// Rebuild replaces the indexed documents with records
func (i *Index) Rebuild(records []model.CompanyRecord) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	batch := fresh.NewBatch()
	for _, r := range records {
		if r.Symbol == "" {
			continue
		}
		doc := companyDoc{
			Symbol:   r.Symbol,
			Name:     r.CompanyName,
			Sector:   r.Sector,
			Industry: r.Industry,
		}
		if err := batch.Index(r.Symbol, doc); err != nil {
			fresh.Close()
			return fmt.Errorf("failed to add %s to batch: %w", r.Symbol, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		fresh.Close()
		return fmt.Errorf("failed to execute batch: %w", err)
	}

	i.mu.Lock()
	old := i.index
	i.index = fresh
	i.mu.Unlock()

	return old.Close()
}

// Search returns matching symbols ordered by relevance: exact symbol, symbol
// prefix, name match, then substring matches on symbol and name.
//
// A non-nil within restricts matching to those symbols inside the index, and
// every match among them is returned. Otherwise the whole index is searched.
// A positive limit caps the hit count; without within it never exceeds DefaultLimit.
func (i *Index) Search(q string, within []string, limit int) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" || (within != nil && len(within) == 0) {
		return []string{}, nil
	}

	size := DefaultLimit
	if within != nil {
		size = len(within)
	}
	if limit > 0 && limit < size {
		size = limit
	}

	var searchQuery query.Query = textQuery(q)
	if within != nil {
		searchQuery = bleve.NewConjunctionQuery(searchQuery, bleve.NewDocIDQuery(within))
	}

	searchRequest := bleve.NewSearchRequest(searchQuery)
	searchRequest.Size = size

	i.mu.RLock()
	defer i.mu.RUnlock()

	results, err := i.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	symbols := make([]string, 0, len(results.Hits))
	for _, hit := range results.Hits {
		symbols = append(symbols, hit.ID)
	}
	return symbols, nil
}

func textQuery(q string) query.Query {
	lower := strings.ToLower(q)

	exactQuery := bleve.NewTermQuery(lower)
	exactQuery.SetField("symbol")
	exactQuery.SetBoost(10.0)

	prefixQuery := bleve.NewPrefixQuery(lower)
	prefixQuery.SetField("symbol")
	prefixQuery.SetBoost(5.0)

	nameMatchQuery := bleve.NewMatchQuery(q)
	nameMatchQuery.SetField("name")
	nameMatchQuery.SetBoost(3.0)

	wildcardSymbol := bleve.NewWildcardQuery("*" + lower + "*")
	wildcardSymbol.SetField("symbol")
	wildcardSymbol.SetBoost(2.0)

	wildcardName := bleve.NewWildcardQuery("*" + lower + "*")
	wildcardName.SetField("name")
	wildcardName.SetBoost(1.5)

	return bleve.NewDisjunctionQuery(
		exactQuery,
		prefixQuery,
		nameMatchQuery,
		wildcardSymbol,
		wildcardName,
	)
}

// Count returns the number of indexed documents
func (i *Index) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}

// Close releases the index
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}
