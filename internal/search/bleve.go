package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// SavedIndex is an in-memory bleve index over the saved articles. Results
// keep the order the backend returned the saved list in.
type SavedIndex struct {
	index  bleve.Index
	mu     sync.RWMutex
	items  map[string]domain.SavedArticle
	order  map[string]int
	logger *logger.Logger
}

// NewSavedIndex creates an empty index
func NewSavedIndex(log *logger.Logger) (*SavedIndex, error) {
	if log == nil {
		log = logger.Nop()
	}

	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create saved index: %w", err)
	}

	return &SavedIndex{
		index:  idx,
		items:  make(map[string]domain.SavedArticle),
		order:  make(map[string]int),
		logger: log.WithComponent("saved-index"),
	}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	savedMapping := bleve.NewDocumentMapping()

	// Headline is tokenized but not stemmed so prefixes of typed words match
	headlineFieldMapping := bleve.NewTextFieldMapping()
	headlineFieldMapping.Analyzer = "standard"
	headlineFieldMapping.Store = false
	savedMapping.AddFieldMappingsAt("headline", headlineFieldMapping)

	websiteFieldMapping := bleve.NewKeywordFieldMapping()
	websiteFieldMapping.Store = false
	savedMapping.AddFieldMappingsAt("website", websiteFieldMapping)

	createdFieldMapping := bleve.NewDateTimeFieldMapping()
	createdFieldMapping.Store = false
	savedMapping.AddFieldMappingsAt("created_at", createdFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = savedMapping
	return indexMapping
}

// Load replaces the indexed entries with saved
func (s *SavedIndex) Load(ctx context.Context, saved []domain.SavedArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.index.NewBatch()
	for id := range s.items {
		batch.Delete(id)
	}

	items := make(map[string]domain.SavedArticle, len(saved))
	order := make(map[string]int, len(saved))
	for i, entry := range saved {
		id := savedID(entry)
		if id == "" {
			continue
		}
		if _, dup := items[id]; dup {
			continue
		}
		if err := batch.Index(id, SavedToDocument(entry)); err != nil {
			return fmt.Errorf("failed to index saved article %s: %w", id, err)
		}
		items[id] = entry
		order[id] = i
	}

	if err := s.index.Batch(batch); err != nil {
		s.logger.Error("Failed to index saved articles", "error", err)
		return fmt.Errorf("failed to index saved articles: %w", err)
	}

	s.items = items
	s.order = order
	s.logger.Debug("Indexed saved articles", "count", len(items))
	return nil
}

// Search returns the saved articles matching q. Every word of q must start
// a headline word or equal the source name. An empty q returns everything.
func (s *SavedIndex) Search(ctx context.Context, q string) ([]domain.SavedArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return []domain.SavedArticle{}, nil
	}

	req := bleve.NewSearchRequest(buildSearchQuery(q))
	req.Size = len(s.items)

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		s.logger.Error("Saved search failed", "query", q, "error", err)
		return nil, fmt.Errorf("search failed: %w", err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if _, ok := s.items[hit.ID]; ok {
			ids = append(ids, hit.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] < s.order[ids[j]] })

	out := make([]domain.SavedArticle, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.items[id])
	}
	return out, nil
}

func buildSearchQuery(q string) query.Query {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return bleve.NewMatchAllQuery()
	}

	queries := make([]query.Query, 0, len(terms))
	for _, term := range terms {
		headline := bleve.NewPrefixQuery(term)
		headline.SetField("headline")

		website := bleve.NewTermQuery(term)
		website.SetField("website")

		queries = append(queries, bleve.NewDisjunctionQuery(headline, website))
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// Count returns the number of indexed entries
func (s *SavedIndex) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close closes the index
func (s *SavedIndex) Close() error {
	if err := s.index.Close(); err != nil {
		return fmt.Errorf("failed to close index: %w", err)
	}
	return nil
}
