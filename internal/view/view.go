// Package view renders domain values as HTML through embedded html/template
// components. Mapping from domain values to view models is done by plain
// functions in models.go; templates never see domain types.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Component template names.
const (
	NameTranslator = "translator"
	NameResult     = "translation"
	NameForm       = "document-form"
	NameDocuments  = "documents"
	NameDocument   = "document-view"
	NameSearch     = "search-results"
	NameWebSearch  = "web-results"
	NameAudio      = "audio"
	NameConfirm    = "confirm"
	NameNotice     = "notice"
)

// Part is one rendered component. OOB parts carry hx-swap-oob so htmx swaps
// them into the page by element id.
type Part struct {
	Name string
	Data any
	OOB  bool
}

// Renderer executes the component templates.
type Renderer struct {
	t *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"part": func(data any) Part { return Part{Data: data} },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// MustNew is like New but panics on error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Page renders the full page.
func (r *Renderer) Page(w io.Writer, p PageView) error {
	if err := r.t.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Render writes parts in order.
func (r *Renderer) Render(w io.Writer, parts ...Part) error {
	for _, p := range parts {
		if err := r.t.ExecuteTemplate(w, p.Name, p); err != nil {
			return fmt.Errorf("render %s: %w", p.Name, err)
		}
	}
	return nil
}
