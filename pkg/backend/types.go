package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// DocumentID identifies a stored document. The backend emits integer ids, but
// string ids are accepted so the client does not depend on either.
type DocumentID string

// UnmarshalJSON accepts a JSON number or string.
func (id *DocumentID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("doc_id: %w", err)
		}
		*id = DocumentID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("doc_id: %w", err)
	}
	*id = DocumentID(n.String())
	return nil
}

// Timestamp is a creation time as written by the backend store
// ("2006-01-02 15:04:05" in UTC, or RFC 3339).
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON tolerates unknown formats by leaving the time zero.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil //nolint:nilerr // unparseable timestamps are displayed as unknown
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// validator is implemented by response schemas that check required fields.
type validator interface {
	validate(op string) error
}

// --- Translation ---

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// TranslateResponse is the result of a translation.
type TranslateResponse struct {
	OriginalText   string   `json:"original_text"`
	TranslatedText string   `json:"translated_text"`
	SourceLang     string   `json:"source_lang"`
	TargetLang     string   `json:"target_lang"`
	Confidence     *float64 `json:"confidence,omitempty"`
}

func (r *TranslateResponse) validate(op string) error {
	if strings.TrimSpace(r.TranslatedText) == "" {
		return malformed(op, "missing translated_text")
	}
	if r.Confidence != nil && (math.IsNaN(*r.Confidence) || math.IsInf(*r.Confidence, 0)) {
		return malformed(op, "confidence is not a finite number")
	}
	return nil
}

// LanguagePair is one supported translation direction.
type LanguagePair struct {
	From string `json:"from"`
	To   string `json:"to"`
	Name string `json:"name"`
}

// LanguagePairs is the result of GET /api/translate/languages.
type LanguagePairs struct {
	SupportedPairs []LanguagePair `json:"supported_pairs"`
	Total          int            `json:"total"`
}

func (r *LanguagePairs) validate(op string) error {
	if r.SupportedPairs == nil {
		return malformed(op, "missing supported_pairs")
	}
	for i, p := range r.SupportedPairs {
		if p.From == "" || p.To == "" {
			return malformed(op, "pair %d has no language codes", i)
		}
	}
	return nil
}

// --- Documents ---

// DocumentInput is the body of document create and update.
type DocumentInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// DocumentReceipt acknowledges a create, update or delete.
type DocumentReceipt struct {
	DocID   DocumentID `json:"doc_id"`
	Title   string     `json:"title,omitempty"`
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
}

func (r *DocumentReceipt) validate(op string) error {
	if r.DocID == "" {
		return malformed(op, "missing doc_id")
	}
	return nil
}

// FileInput is a file upload for POST /api/documents/upload-file.
type FileInput struct {
	Filename string
	Language string
	Content  io.Reader
}

// FileReceipt acknowledges a file upload.
type FileReceipt struct {
	Filename string     `json:"filename"`
	DocID    DocumentID `json:"doc_id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Status   string     `json:"status"`
	Message  string     `json:"message,omitempty"`
}

func (r *FileReceipt) validate(op string) error {
	if r.Filename == "" && r.DocID == "" {
		return malformed(op, "missing filename and doc_id")
	}
	return nil
}

// Document is a stored document.
type Document struct {
	DocID     DocumentID     `json:"doc_id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Language  string         `json:"language"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt Timestamp      `json:"created_at"`
}

func (d *Document) validate(op string) error {
	if d.DocID == "" {
		return malformed(op, "document without doc_id")
	}
	return nil
}

// DocumentList is the result of GET /api/documents/list.
type DocumentList struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}

func (l *DocumentList) validate(op string) error {
	if l.Documents == nil {
		return malformed(op, "missing documents")
	}
	for i := range l.Documents {
		if err := l.Documents[i].validate(op); err != nil {
			return err
		}
	}
	return nil
}

// --- Search ---

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// SearchHit is one semantic search result.
type SearchHit struct {
	DocID   DocumentID `json:"doc_id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Score   float64    `json:"score"`
}

// SearchResponse is the result of a document search.
type SearchResponse struct {
	Query          string      `json:"query"`
	Results        []SearchHit `json:"results"`
	TotalResults   int         `json:"total_results"`
	ProcessingTime float64     `json:"processing_time"`
}

func (r *SearchResponse) validate(op string) error {
	if r.Results == nil {
		return malformed(op, "missing results")
	}
	for i, h := range r.Results {
		if math.IsNaN(h.Score) || math.IsInf(h.Score, 0) {
			return malformed(op, "result %d has a non-finite score", i)
		}
	}
	return nil
}

// WebSearchRequest is the body of POST /api/search/web.
type WebSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// WebHit is one web search result.
type WebHit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source,omitempty"`
}

// WebSearchResponse is the result of a web search.
type WebSearchResponse struct {
	Query        string   `json:"query"`
	Results      []WebHit `json:"results"`
	TotalResults int      `json:"total_results"`
}

func (r *WebSearchResponse) validate(op string) error {
	if r.Results == nil {
		return malformed(op, "missing results")
	}
	return nil
}

// SearchStats describes the search index.
type SearchStats struct {
	TotalDocuments int    `json:"total_documents"`
	Indexed        bool   `json:"indexed"`
	LastUpdated    string `json:"last_updated"`
}

// --- Speech ---

// SpeakRequest is the body of POST /api/tts/speak.
type SpeakRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Voice    string  `json:"voice,omitempty"`
	Rate     float64 `json:"rate"`
	Pitch    int     `json:"pitch"`
}

// Audio is a synthesized speech clip.
type Audio struct {
	ContentType string
	Data        []byte
}

// Voice is one selectable speech voice.
type Voice struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Voice string `json:"voice"`
}

// Voices groups voices by language.
type Voices struct {
	Vietnamese []Voice `json:"vietnamese"`
	English    []Voice `json:"english"`
}

// --- Health ---

// HealthStatus is the result of GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (h *HealthStatus) validate(op string) error {
	if h.Status == "" {
		return malformed(op, "missing status")
	}
	return nil
}
