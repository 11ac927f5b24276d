package websearch

import (
	"context"

	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Searcher calls the backend web search endpoint.
type Searcher interface {
	WebSearch(ctx context.Context, req backend.WebSearchRequest) (*backend.WebSearchResponse, error)
}
