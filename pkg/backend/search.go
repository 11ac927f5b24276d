package backend

import (
	"context"
	"net/http"
)

// Search runs a semantic search over stored documents.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.callJSON(ctx, "search", http.MethodPost, c.url("search"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WebSearch runs a web search.
func (c *Client) WebSearch(ctx context.Context, req WebSearchRequest) (*WebSearchResponse, error) {
	var out WebSearchResponse
	if err := c.callJSON(ctx, "search.web", http.MethodPost, c.url("search", "web"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchStats describes the state of the search index.
func (c *Client) SearchStats(ctx context.Context) (*SearchStats, error) {
	var out SearchStats
	if err := c.callJSON(ctx, "search.stats", http.MethodGet, c.url("search", "stats"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
