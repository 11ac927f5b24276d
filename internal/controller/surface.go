package controller

import (
	"context"

	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
)

// Control names an interactive element that is disabled while its request is in flight.
type Control string

// Guarded controls.
const (
	ControlTranslate Control = "translate"
	ControlDocument  Control = "document"
	ControlSearch    Control = "search"
	ControlWebSearch Control = "web-search"
	ControlSpeak     Control = "speak"
)

// Surface is where an event came from and where its outcome is shown: one
// browser session of the web UI, or one CLI invocation.
type Surface interface {
	// Notify shows a transient notice.
	Notify(n notice.Notice)
	// Acquire disables a control. It returns false when the control is already
	// disabled, in which case the event is dropped.
	Acquire(ctx context.Context, c Control) bool
	// Release re-enables a control.
	Release(ctx context.Context, c Control)
	// Confirm asks the user to confirm a destructive action.
	Confirm(ctx context.Context, prompt string) bool

	ShowTranslation(r translation.Result)
	ShowDocuments(docs []document.Document)
	ShowDocument(d document.Document)
	// EditDocument fills the document form with d.
	EditDocument(d document.Document)
	// ResetDocumentForm clears the document form and leaves edit mode.
	ResetDocumentForm()
	ShowSearch(p search.Page)
	// ClearSearch hides document search results.
	ClearSearch()
	ShowWebSearch(p search.WebPage)
	PlayAudio(a speech.Audio)
}
