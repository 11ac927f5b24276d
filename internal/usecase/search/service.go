package search

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	domsearch "github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Stats describes the backend search index.
type Stats struct {
	TotalDocuments int
	Indexed        bool
	LastUpdated    string
}

// Service runs semantic search over stored documents.
type Service struct {
	searcher Searcher
}

// New creates a search service.
func New(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Search sends one search request with the query's result bound.
func (s *Service) Search(ctx context.Context, q domsearch.Query) (domsearch.Page, error) {
	resp, err := s.searcher.Search(ctx, backend.SearchRequest{Query: q.Text(), TopK: q.Limit()})
	if err != nil {
		return domsearch.Page{}, fmt.Errorf("search documents: %w", err)
	}

	results := make([]domsearch.Result, 0, len(resp.Results))
	for _, h := range resp.Results {
		results = append(results, domsearch.Result{
			DocID:   document.ID(h.DocID),
			Title:   h.Title,
			Content: h.Content,
			Score:   h.Score,
		})
	}

	return domsearch.Page{
		Query:          q.Text(),
		Results:        results,
		Total:          max(resp.TotalResults, len(results)),
		ProcessingTime: seconds(resp.ProcessingTime),
	}, nil
}

// Stats fetches index statistics.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	resp, err := s.searcher.SearchStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("search stats: %w", err)
	}
	return Stats{
		TotalDocuments: resp.TotalDocuments,
		Indexed:        resp.Indexed,
		LastUpdated:    resp.LastUpdated,
	}, nil
}

// seconds converts the backend's fractional seconds to a Duration.
func seconds(v float64) time.Duration {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return time.Duration(v * float64(time.Second))
}
