package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/logger"
)

// Search runs a document search. topK <= 0 means the default; larger values
// are clamped to the maximum.
func (c *Controller) Search(ctx context.Context, s Surface, text string, topK int) error {
	if err := c.acquire(ctx, s, ControlSearch); err != nil {
		return err
	}
	defer s.Release(ctx, ControlSearch)

	q, err := search.NewQuery(text, topK, c.limits.DefaultTopK, c.limits.MaxTopK)
	if err != nil {
		return c.fail(ctx, s, "search", err, "Search failed")
	}

	page, err := c.search.Search(ctx, q)
	if err != nil {
		return c.fail(ctx, s, "search", err, "Search failed")
	}
	s.ShowSearch(page)
	return nil
}

// ClearSearch hides the search results and restores the full listing.
func (c *Controller) ClearSearch(ctx context.Context, s Surface) error {
	s.ClearSearch()
	return c.LoadDocuments(ctx, s)
}

// WebSearch runs an external web search. limit <= 0 means the default.
func (c *Controller) WebSearch(ctx context.Context, s Surface, text string, limit int) error {
	if err := c.acquire(ctx, s, ControlWebSearch); err != nil {
		return err
	}
	defer s.Release(ctx, ControlWebSearch)

	q, err := search.NewQuery(text, limit, c.limits.DefaultWebLimit, c.limits.MaxWebLimit)
	if err != nil {
		return c.fail(ctx, s, "web_search", err, "Web search failed")
	}

	page, err := c.web.Search(ctx, q)
	if err != nil {
		return c.fail(ctx, s, "web_search", err, "Web search failed")
	}
	s.ShowWebSearch(page)
	return nil
}

func (c *Controller) logFallback(ctx context.Context, op string, err error) {
	logger.FromContext(ctx).Warn("using fallback", zap.String("op", op), zap.Error(err))
}
