package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/kailas-cloud/lingodesk/internal/controller"
	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
)

// terminal is the surface of one CLI invocation: results go to out, notices
// and prompts to errOut.
type terminal struct {
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader

	assumeYes    bool
	audioPath    string
	previewRunes int

	mu     sync.Mutex
	busy   map[controller.Control]bool
	failed bool
}

var _ controller.Surface = (*terminal)(nil)

func newTerminal(out, errOut io.Writer, in io.Reader, assumeYes bool) *terminal {
	return &terminal{
		out:          out,
		errOut:       errOut,
		in:           bufio.NewReader(in),
		assumeYes:    assumeYes,
		previewRunes: document.DefaultPreviewRunes,
		busy:         make(map[controller.Control]bool),
	}
}

// Failed reports whether a warning or danger notice was shown.
func (t *terminal) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

func (t *terminal) Notify(n notice.Notice) {
	t.mu.Lock()
	if n.Level == notice.Warning || n.Level == notice.Danger {
		t.failed = true
	}
	t.mu.Unlock()
	fmt.Fprintf(t.errOut, "[%s] %s\n", n.Level, n.Message)
}

func (t *terminal) Acquire(_ context.Context, c controller.Control) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy[c] {
		return false
	}
	t.busy[c] = true
	return true
}

func (t *terminal) Release(_ context.Context, c controller.Control) {
	t.mu.Lock()
	delete(t.busy, c)
	t.mu.Unlock()
}

// Confirm asks on errOut and reads y/N from in. Anything but y or yes declines.
func (t *terminal) Confirm(_ context.Context, prompt string) bool {
	if t.assumeYes {
		return true
	}
	fmt.Fprintf(t.errOut, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (t *terminal) ShowTranslation(r translation.Result) {
	fmt.Fprintln(t.out, r.Text)
	fmt.Fprintln(t.errOut, r.ConfidenceLabel())
}

func (t *terminal) ShowDocuments(docs []document.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(t.out, "No documents uploaded yet")
		return
	}
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLANGUAGE\tCREATED\tPREVIEW")
	for _, d := range docs {
		created := "-"
		if !d.CreatedAt.IsZero() {
			created = d.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title, d.Language.Name(), created, d.Preview(t.previewRunes))
	}
	_ = tw.Flush()
}

func (t *terminal) ShowDocument(d document.Document) {
	fmt.Fprintf(t.out, "%s\n", d.Title)
	fmt.Fprintf(t.out, "ID: %s  Language: %s", d.ID, d.Language.Name())
	if !d.CreatedAt.IsZero() {
		fmt.Fprintf(t.out, "  Created: %s", d.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(t.out, "\n\n%s\n", d.Content)
}

// The terminal has no document form.
func (t *terminal) EditDocument(document.Document) {}
func (t *terminal) ResetDocumentForm()             {}
func (t *terminal) ClearSearch()                   {}

func (t *terminal) ShowSearch(p search.Page) {
	fmt.Fprintln(t.errOut, p.Stats())
	if p.Empty() {
		fmt.Fprintf(t.out, "No results found for %q\n", p.Query)
		return
	}
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tMATCH\tID")
	for i, r := range p.Results {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\n", i+1, r.Title, r.MatchLabel(), r.DocID)
	}
	_ = tw.Flush()
}

func (t *terminal) ShowWebSearch(p search.WebPage) {
	fmt.Fprintln(t.errOut, p.Stats())
	if p.Empty() {
		fmt.Fprintf(t.out, "No web results found for %q\n", p.Query)
		return
	}
	for i, r := range p.Results {
		fmt.Fprintf(t.out, "%d. %s [%s]\n   %s\n   %s\n", i+1, r.Title, r.Source, r.Link, r.Snippet)
	}
}

// PlayAudio saves the clip to the configured path.
func (t *terminal) PlayAudio(a speech.Audio) {
	if err := os.WriteFile(t.audioPath, a.Data, 0o600); err != nil {
		t.Notify(notice.New(notice.Danger, "Error: "+err.Error()))
		return
	}
	fmt.Fprintf(t.errOut, "Saved %s (%s) to %s\n", a.ContentType, humanize.Bytes(uint64(len(a.Data))), t.audioPath)
}
