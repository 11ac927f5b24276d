package view

import (
	"encoding/base64"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
)

const createdLayout = "2006-01-02 15:04"

// LanguageOption is one entry of a language select.
type LanguageOption struct {
	Code     string
	Name     string
	Selected bool
}

// LanguageOptions builds select options with selected marked.
func LanguageOptions(codes []language.Code, selected language.Code) []LanguageOption {
	out := make([]LanguageOption, len(codes))
	for i, c := range codes {
		out[i] = LanguageOption{Code: c.String(), Name: c.Name(), Selected: c == selected}
	}
	return out
}

// TranslatorView is the translation input panel.
type TranslatorView struct {
	Text   string
	Source []LanguageOption
	Target []LanguageOption
}

// Translator builds the input panel.
func Translator(text string, codes []language.Code, source, target language.Code) TranslatorView {
	return TranslatorView{
		Text:   text,
		Source: LanguageOptions(codes, source),
		Target: LanguageOptions(codes, target),
	}
}

// VoiceOption is one entry of the voice select.
type VoiceOption struct {
	Key  string
	Name string
}

// TranslationView is a translation result with the voices that can read it.
type TranslationView struct {
	Text       string
	Confidence string
	Target     string
	Voices     []VoiceOption
}

// Translation maps a translation result. voices are offered in the speak form.
func Translation(r translation.Result, voices []speech.Voice) TranslationView {
	v := TranslationView{Text: r.Text, Confidence: r.ConfidenceLabel(), Target: r.Target.String()}
	for _, voice := range voices {
		v.Voices = append(v.Voices, VoiceOption{Key: voice.Key, Name: voice.Name})
	}
	return v
}

// DocumentRow is one entry of the document listing.
type DocumentRow struct {
	ID         string
	Title      string
	Language   string
	Created    string
	CreatedAgo string
	Preview    string
}

// DocumentsView is the document listing.
type DocumentsView struct {
	Rows []DocumentRow
}

// Empty reports whether "No documents uploaded yet" should be shown.
func (v DocumentsView) Empty() bool { return len(v.Rows) == 0 }

// Documents maps the listing. Content previews are cut to previewRunes.
func Documents(docs []document.Document, previewRunes int, now time.Time) DocumentsView {
	rows := make([]DocumentRow, len(docs))
	for i, d := range docs {
		rows[i] = DocumentRow{
			ID:       d.ID.String(),
			Title:    d.Title,
			Language: d.Language.Name(),
			Preview:  d.Preview(previewRunes),
		}
		if !d.CreatedAt.IsZero() {
			rows[i].Created = d.CreatedAt.Format(createdLayout)
			rows[i].CreatedAgo = humanize.RelTime(d.CreatedAt, now, "ago", "from now")
		}
	}
	return DocumentsView{Rows: rows}
}

// DocumentView is a full document.
type DocumentView struct {
	ID       string
	Title    string
	Language string
	Created  string
	Content  string
}

// Document maps a full document.
func Document(d document.Document) DocumentView {
	v := DocumentView{
		ID:       d.ID.String(),
		Title:    d.Title,
		Language: d.Language.Name(),
		Content:  d.Content,
	}
	if !d.CreatedAt.IsZero() {
		v.Created = d.CreatedAt.Format(createdLayout)
	}
	return v
}

// FormView is the document form.
type FormView struct {
	Editing   bool
	ID        string
	Title     string
	Content   string
	Languages []LanguageOption
	MaxUpload string
}

// EmptyForm builds the create-mode form.
func EmptyForm(codes []language.Code, maxUpload int64) FormView {
	def := language.English
	if len(codes) > 0 {
		def = codes[0]
	}
	return FormView{
		Languages: LanguageOptions(codes, def),
		MaxUpload: humanize.IBytes(uint64(maxUpload)),
	}
}

// EditForm builds the form for editing d.
func EditForm(d document.Document, codes []language.Code, maxUpload int64) FormView {
	return FormView{
		Editing:   true,
		ID:        d.ID.String(),
		Title:     d.Title,
		Content:   d.Content,
		Languages: LanguageOptions(codes, d.Language),
		MaxUpload: humanize.IBytes(uint64(maxUpload)),
	}
}

// SearchRow is one ranked document hit.
type SearchRow struct {
	Rank    int
	ID      string
	Title   string
	Match   string
	Content string
}

// SearchView is the document search panel. Hidden clears it.
type SearchView struct {
	Hidden bool
	Query  string
	Stats  string
	Rows   []SearchRow
}

// Empty reports whether the no-results state should be shown.
func (v SearchView) Empty() bool { return len(v.Rows) == 0 }

// Search maps a search page.
func Search(p search.Page) SearchView {
	rows := make([]SearchRow, len(p.Results))
	for i, r := range p.Results {
		rows[i] = SearchRow{
			Rank:    i + 1,
			ID:      r.DocID.String(),
			Title:   r.Title,
			Match:   r.MatchLabel(),
			Content: r.Content,
		}
	}
	return SearchView{Query: p.Query, Stats: p.Stats(), Rows: rows}
}

// ClearedSearch hides the search panel.
func ClearedSearch() SearchView { return SearchView{Hidden: true} }

// WebRow is one external hit.
type WebRow struct {
	Title   string
	Link    string
	Snippet string
	Source  string
}

// WebSearchView is the web search panel.
type WebSearchView struct {
	Query string
	Stats string
	Rows  []WebRow
}

// Empty reports whether the no-web-results state should be shown.
func (v WebSearchView) Empty() bool { return len(v.Rows) == 0 }

// WebSearch maps a web search page.
func WebSearch(p search.WebPage) WebSearchView {
	rows := make([]WebRow, len(p.Results))
	for i, r := range p.Results {
		rows[i] = WebRow{Title: r.Title, Link: r.Link, Snippet: r.Snippet, Source: r.Source}
	}
	return WebSearchView{Query: p.Query, Stats: p.Stats(), Rows: rows}
}

// AudioView is an autoplaying audio element.
type AudioView struct {
	Src         template.URL
	ContentType string
}

// Audio embeds synthesized speech as a data URL. A content type that is not
// audio is replaced by one sniffed from the bytes.
func Audio(a speech.Audio) AudioView {
	ct := strings.TrimSpace(a.ContentType)
	if !strings.HasPrefix(ct, "audio/") {
		ct = "audio/mpeg"
		if m := mimetype.Detect(a.Data); strings.HasPrefix(m.String(), "audio/") {
			ct = m.String()
		}
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	src := "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
	return AudioView{Src: template.URL(src), ContentType: ct} //nolint:gosec // ct is a bare audio/* type
}

// ConfirmView is the delete confirmation dialog.
type ConfirmView struct {
	Prompt string
	ID     string
}

// NoticeView is a transient notice.
type NoticeView struct {
	Level   string
	Message string
	TTLms   int64
}

// Notice maps a notice with its display time.
func Notice(n notice.Notice, ttl time.Duration) NoticeView {
	return NoticeView{Level: string(n.Level), Message: n.Message, TTLms: ttl.Milliseconds()}
}

// PageView is the full page.
type PageView struct {
	Title      string
	Version    string
	Translator TranslatorView
	Form       FormView
	Documents  DocumentsView
	Notices    []NoticeView
}
