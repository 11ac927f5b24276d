package web

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lingodesk/internal/controller"
	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
	"github.com/kailas-cloud/lingodesk/internal/logger"
	"github.com/kailas-cloud/lingodesk/internal/view"
)

// locker is the control-lock part of the session store.
type locker interface {
	Acquire(ctx context.Context, sid, control string) (bool, error)
	Release(ctx context.Context, sid, control string) error
}

// surface collects the components produced by one request of one browser
// session. Every component is rendered out-of-band and swapped by element id.
type surface struct {
	mu sync.Mutex

	sid       string
	locks     locker
	languages []language.Code
	voices    []speech.Voice
	opts      Options
	now       func() time.Time

	confirmed bool
	deleting  document.ID

	parts     []view.Part
	notices   []view.NoticeView
	documents *view.DocumentsView
}

var _ controller.Surface = (*surface)(nil)

func (s *surface) add(name string, data any) {
	s.mu.Lock()
	s.parts = append(s.parts, view.Part{Name: name, Data: data, OOB: true})
	s.mu.Unlock()
}

func (s *surface) Notify(n notice.Notice) {
	nv := view.Notice(n, s.opts.NoticeTTL)
	s.mu.Lock()
	s.notices = append(s.notices, nv)
	s.parts = append(s.parts, view.Part{Name: view.NameNotice, Data: nv, OOB: true})
	s.mu.Unlock()
}

// Acquire takes the session's control lock. When the lock store is
// unavailable the event proceeds unguarded.
func (s *surface) Acquire(ctx context.Context, c controller.Control) bool {
	ok, err := s.locks.Acquire(ctx, s.sid, string(c))
	if err != nil {
		logger.FromContext(ctx).Warn("control lock unavailable",
			zap.String("control", string(c)), zap.Error(err))
		return true
	}
	return ok
}

func (s *surface) Release(ctx context.Context, c controller.Control) {
	if err := s.locks.Release(ctx, s.sid, string(c)); err != nil {
		logger.FromContext(ctx).Warn("control unlock failed",
			zap.String("control", string(c)), zap.Error(err))
	}
}

// Confirm reports whether the request carried confirm=yes. Otherwise the
// confirmation dialog is rendered and the action is not taken.
func (s *surface) Confirm(_ context.Context, prompt string) bool {
	if s.confirmed {
		s.add(view.NameConfirm, nil)
		return true
	}
	s.add(view.NameConfirm, view.ConfirmView{Prompt: prompt, ID: s.deleting.String()})
	return false
}

func (s *surface) ShowTranslation(r translation.Result) {
	s.add(view.NameResult, view.Translation(r, speech.VoicesFor(s.voices, r.Target)))
}

func (s *surface) ShowDocuments(docs []document.Document) {
	v := view.Documents(docs, s.opts.PreviewRunes, s.now())
	s.mu.Lock()
	s.documents = &v
	s.mu.Unlock()
	s.add(view.NameDocuments, v)
}

func (s *surface) ShowDocument(d document.Document) {
	s.add(view.NameDocument, view.Document(d))
}

func (s *surface) EditDocument(d document.Document) {
	s.add(view.NameForm, view.EditForm(d, s.languages, s.opts.MaxUploadBytes))
}

func (s *surface) ResetDocumentForm() {
	s.add(view.NameForm, view.EmptyForm(s.languages, s.opts.MaxUploadBytes))
}

func (s *surface) ShowSearch(p search.Page) {
	s.add(view.NameSearch, view.Search(p))
}

func (s *surface) ClearSearch() {
	s.add(view.NameSearch, view.ClearedSearch())
}

func (s *surface) ShowWebSearch(p search.WebPage) {
	s.add(view.NameWebSearch, view.WebSearch(p))
}

func (s *surface) PlayAudio(a speech.Audio) {
	s.add(view.NameAudio, view.Audio(a))
}
