package search

import (
	"context"

	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Searcher calls the backend document search endpoints.
type Searcher interface {
	Search(ctx context.Context, req backend.SearchRequest) (*backend.SearchResponse, error)
	SearchStats(ctx context.Context) (*backend.SearchStats, error)
}
