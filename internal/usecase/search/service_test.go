package search

import (
	"context"
	"errors"
	"testing"
	"time"

	domsearch "github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// --- Mocks ---

type mockSearcher struct {
	last  backend.SearchRequest
	resp  *backend.SearchResponse
	stats *backend.SearchStats
	err   error
}

func (m *mockSearcher) Search(_ context.Context, req backend.SearchRequest) (*backend.SearchResponse, error) {
	m.last = req
	return m.resp, m.err
}

func (m *mockSearcher) SearchStats(context.Context) (*backend.SearchStats, error) {
	return m.stats, m.err
}

// --- Tests ---

func TestSearch(t *testing.T) {
	m := &mockSearcher{resp: &backend.SearchResponse{
		Results: []backend.SearchHit{
			{DocID: "1", Title: "Hello", Content: "Hello world", Score: 0.92},
			{DocID: "2", Title: "Bye", Content: "Goodbye", Score: 0.41},
		},
		TotalResults:   2,
		ProcessingTime: 0.01234,
	}}
	q, err := domsearch.NewQuery(" greeting ", 0, domsearch.DefaultTopK, domsearch.MaxTopK)
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}

	page, err := New(m).Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if m.last.Query != "greeting" || m.last.TopK != 5 {
		t.Errorf("unexpected request: %+v", m.last)
	}
	if len(page.Results) != 2 || page.Results[0].MatchLabel() != "92.0%" {
		t.Errorf("unexpected results: %+v", page.Results)
	}
	if got := page.Stats(); got != "Found 2 result(s) in 12.34ms" {
		t.Errorf("stats = %q", got)
	}
}

func TestSearch_Empty(t *testing.T) {
	m := &mockSearcher{resp: &backend.SearchResponse{Results: []backend.SearchHit{}}}
	q, _ := domsearch.NewQuery("nothing", 3, domsearch.DefaultTopK, domsearch.MaxTopK)
	page, err := New(m).Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !page.Empty() {
		t.Error("expected empty page")
	}
	if m.last.TopK != 3 {
		t.Errorf("top_k = %d", m.last.TopK)
	}
}

func TestSearch_Error(t *testing.T) {
	m := &mockSearcher{err: errors.New("timeout")}
	q, _ := domsearch.NewQuery("x", 1, domsearch.DefaultTopK, domsearch.MaxTopK)
	if _, err := New(m).Search(context.Background(), q); err == nil {
		t.Fatal("expected error")
	}
}

func TestStats(t *testing.T) {
	m := &mockSearcher{stats: &backend.SearchStats{TotalDocuments: 3, Indexed: true}}
	st, err := New(m).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalDocuments != 3 || !st.Indexed {
		t.Errorf("unexpected stats: %+v", st)
	}
}

func TestSeconds(t *testing.T) {
	if got := seconds(1.5); got != 1500*time.Millisecond {
		t.Errorf("seconds(1.5) = %v", got)
	}
	if got := seconds(-1); got != 0 {
		t.Errorf("seconds(-1) = %v", got)
	}
}
