package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/document"
)

// Result-count bounds for document and web search.
const (
	DefaultTopK     = 5
	MaxTopK         = 50
	DefaultWebLimit = 5
	MaxWebLimit     = 20
)

// Query is a validated search query with a result-count bound.
type Query struct {
	text  string
	limit int
}

// NewQuery trims the text and clamps limit into [1, max]. A non-positive limit
// becomes def.
func NewQuery(text string, limit, def, maxLimit int) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, domain.NewValidationError("query", "Please enter a search query")
	}
	if limit <= 0 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Query{text: text, limit: limit}, nil
}

// Text returns the trimmed query.
func (q Query) Text() string { return q.text }

// Limit returns the result-count bound.
func (q Query) Limit() int { return q.limit }

// ParseLimit parses a form value, returning def when it is missing or not a number.
func ParseLimit(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Result is a ranked document hit.
type Result struct {
	DocID   document.ID
	Title   string
	Content string
	Score   float64
}

// MatchLabel renders the score as a percentage with one decimal ("92.0%").
func (r Result) MatchLabel() string {
	score := r.Score
	switch {
	case score < 0:
		score = 0
	case score > 1:
		score = 1
	}
	return fmt.Sprintf("%.1f%%", score*100)
}

// Page is one document search response.
type Page struct {
	Query          string
	Results        []Result
	Total          int
	ProcessingTime time.Duration
}

// Empty reports whether the no-results state should be shown.
func (p Page) Empty() bool { return len(p.Results) == 0 }

// Stats formats the result summary line.
func (p Page) Stats() string {
	ms := float64(p.ProcessingTime) / float64(time.Millisecond)
	return fmt.Sprintf("Found %d result(s) in %.2fms", p.Total, ms)
}

// DefaultWebSource labels web results whose source the backend left empty.
const DefaultWebSource = "Web"

// WebResult is an external search hit. It is never persisted.
type WebResult struct {
	Title   string
	Link    string
	Snippet string
	Source  string
}

// WebPage is one web search response.
type WebPage struct {
	Query   string
	Results []WebResult
	Total   int
}

// Empty reports whether the no-web-results state should be shown.
func (p WebPage) Empty() bool { return len(p.Results) == 0 }

// Stats formats the result summary line.
func (p WebPage) Stats() string {
	return fmt.Sprintf("Found %d result(s)", p.Total)
}
