package websearch

import (
	"context"
	"fmt"
	"strings"

	domsearch "github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Service runs external web searches. Results are never stored.
type Service struct {
	searcher Searcher
}

// New creates a web search service.
func New(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Search sends one web search request with the query's result limit.
func (s *Service) Search(ctx context.Context, q domsearch.Query) (domsearch.WebPage, error) {
	resp, err := s.searcher.WebSearch(ctx, backend.WebSearchRequest{Query: q.Text(), Limit: q.Limit()})
	if err != nil {
		return domsearch.WebPage{}, fmt.Errorf("web search: %w", err)
	}

	results := make([]domsearch.WebResult, 0, len(resp.Results))
	for _, h := range resp.Results {
		src := strings.TrimSpace(h.Source)
		if src == "" {
			src = domsearch.DefaultWebSource
		}
		results = append(results, domsearch.WebResult{
			Title:   h.Title,
			Link:    h.Link,
			Snippet: h.Snippet,
			Source:  src,
		})
	}

	return domsearch.WebPage{
		Query:   q.Text(),
		Results: results,
		Total:   max(resp.TotalResults, len(results)),
	}, nil
}
