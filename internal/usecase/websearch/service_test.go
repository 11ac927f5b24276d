package websearch

import (
	"context"
	"errors"
	"testing"

	domsearch "github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// --- Mocks ---

type mockSearcher struct {
	last backend.WebSearchRequest
	resp *backend.WebSearchResponse
	err  error
}

func (m *mockSearcher) WebSearch(_ context.Context, req backend.WebSearchRequest) (*backend.WebSearchResponse, error) {
	m.last = req
	return m.resp, m.err
}

// --- Tests ---

func TestSearch(t *testing.T) {
	m := &mockSearcher{resp: &backend.WebSearchResponse{
		Results: []backend.WebHit{
			{Title: "Go", Link: "https://go.dev", Snippet: "Build simple software", Source: "DuckDuckGo"},
			{Title: "Tour", Link: "https://go.dev/tour", Snippet: "A tour of Go"},
		},
		TotalResults: 2,
	}}
	q, _ := domsearch.NewQuery("golang", 100, domsearch.DefaultWebLimit, domsearch.MaxWebLimit)

	page, err := New(m).Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if m.last.Limit != domsearch.MaxWebLimit {
		t.Errorf("limit = %d, want clamp to %d", m.last.Limit, domsearch.MaxWebLimit)
	}
	if page.Results[0].Source != "DuckDuckGo" {
		t.Errorf("source = %q", page.Results[0].Source)
	}
	if page.Results[1].Source != domsearch.DefaultWebSource {
		t.Errorf("missing source should default to %q, got %q", domsearch.DefaultWebSource, page.Results[1].Source)
	}
	if got := page.Stats(); got != "Found 2 result(s)" {
		t.Errorf("stats = %q", got)
	}
}

func TestSearch_NoResults(t *testing.T) {
	m := &mockSearcher{resp: &backend.WebSearchResponse{Results: []backend.WebHit{}}}
	q, _ := domsearch.NewQuery("zzz", 0, domsearch.DefaultWebLimit, domsearch.MaxWebLimit)
	page, err := New(m).Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !page.Empty() {
		t.Error("expected empty page")
	}
	if m.last.Limit != domsearch.DefaultWebLimit {
		t.Errorf("limit = %d, want default", m.last.Limit)
	}
}

func TestSearch_Error(t *testing.T) {
	m := &mockSearcher{err: &backend.APIError{Op: "search.web", StatusCode: 502}}
	q, _ := domsearch.NewQuery("x", 1, domsearch.DefaultWebLimit, domsearch.MaxWebLimit)
	_, err := New(m).Search(context.Background(), q)
	if !errors.Is(err, backend.ErrServer) {
		t.Errorf("expected ErrServer, got %v", err)
	}
}
