package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/form"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
	"github.com/kailas-cloud/lingodesk/internal/metrics"
)

// --- Mocks ---

type mockTranslator struct {
	calls   int
	lastReq translation.Request
	result  translation.Result
	err     error
	pairs   []language.Pair
	pairErr error
}

func (m *mockTranslator) Translate(_ context.Context, req translation.Request) (translation.Result, error) {
	m.calls++
	m.lastReq = req
	return m.result, m.err
}

func (m *mockTranslator) Pairs(_ context.Context) ([]language.Pair, error) {
	return m.pairs, m.pairErr
}

type mockDocuments struct {
	submitCalls int
	lastCmd     document.Command
	receipt     document.Receipt
	submitErr   error

	listCalls int
	docs      []document.Document
	listErr   error

	getDoc document.Document
	getErr error

	deleteCalls int
	deleteErr   error
}

func (m *mockDocuments) Submit(_ context.Context, cmd document.Command, draft document.Draft) (document.Receipt, error) {
	// Mirror the service: validation happens before the request.
	if err := draft.Normalized().Validate(cmd, document.MaxFileSize); err != nil {
		return document.Receipt{}, err
	}
	m.submitCalls++
	m.lastCmd = cmd
	return m.receipt, m.submitErr
}

func (m *mockDocuments) List(_ context.Context) ([]document.Document, error) {
	m.listCalls++
	return m.docs, m.listErr
}

func (m *mockDocuments) Get(_ context.Context, id document.ID) (document.Document, error) {
	d := m.getDoc
	if d.ID == "" {
		d.ID = id
	}
	return d, m.getErr
}

func (m *mockDocuments) Delete(_ context.Context, _ document.ID) error {
	m.deleteCalls++
	return m.deleteErr
}

type mockSearcher struct {
	calls int
	lastQ search.Query
	page  search.Page
	err   error
}

func (m *mockSearcher) Search(_ context.Context, q search.Query) (search.Page, error) {
	m.calls++
	m.lastQ = q
	return m.page, m.err
}

type mockWebSearcher struct {
	calls int
	lastQ search.Query
	page  search.WebPage
	err   error
}

func (m *mockWebSearcher) Search(_ context.Context, q search.Query) (search.WebPage, error) {
	m.calls++
	m.lastQ = q
	return m.page, m.err
}

type mockSpeaker struct {
	calls     int
	lastReq   speech.Request
	audio     speech.Audio
	err       error
	voices    []speech.Voice
	voicesErr error
}

func (m *mockSpeaker) Speak(_ context.Context, req speech.Request) (speech.Audio, error) {
	m.calls++
	m.lastReq = req
	return m.audio, m.err
}

func (m *mockSpeaker) Voices(context.Context) ([]speech.Voice, error) {
	return m.voices, m.voicesErr
}

type detailError struct{ detail string }

func (e *detailError) Error() string       { return "backend: " + e.detail }
func (e *detailError) UserMessage() string { return e.detail }

type fakeSurface struct {
	notices  []notice.Notice
	busy     map[Control]bool
	released []Control
	confirm  bool
	prompts  []string

	translation *translation.Result
	documents   []document.Document
	shownDocs   int
	viewed      *document.Document
	edited      *document.Document
	resets      int
	page        *search.Page
	cleared     int
	webPage     *search.WebPage
	audio       *speech.Audio
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{busy: make(map[Control]bool), confirm: true}
}

func (s *fakeSurface) Notify(n notice.Notice) { s.notices = append(s.notices, n) }

func (s *fakeSurface) Acquire(_ context.Context, c Control) bool {
	if s.busy[c] {
		return false
	}
	s.busy[c] = true
	return true
}

func (s *fakeSurface) Release(_ context.Context, c Control) {
	delete(s.busy, c)
	s.released = append(s.released, c)
}

func (s *fakeSurface) Confirm(_ context.Context, prompt string) bool {
	s.prompts = append(s.prompts, prompt)
	return s.confirm
}

func (s *fakeSurface) ShowTranslation(r translation.Result) { s.translation = &r }
func (s *fakeSurface) ShowDocuments(d []document.Document) {
	s.documents = d
	s.shownDocs++
}
func (s *fakeSurface) ShowDocument(d document.Document) { s.viewed = &d }
func (s *fakeSurface) EditDocument(d document.Document) { s.edited = &d }
func (s *fakeSurface) ResetDocumentForm()               { s.resets++ }
func (s *fakeSurface) ShowSearch(p search.Page)         { s.page = &p }
func (s *fakeSurface) ClearSearch()                     { s.cleared++ }
func (s *fakeSurface) ShowWebSearch(p search.WebPage)   { s.webPage = &p }
func (s *fakeSurface) PlayAudio(a speech.Audio)         { s.audio = &a }

func (s *fakeSurface) last() notice.Notice {
	if len(s.notices) == 0 {
		return notice.Notice{}
	}
	return s.notices[len(s.notices)-1]
}

type fixture struct {
	tr  *mockTranslator
	doc *mockDocuments
	src *mockSearcher
	web *mockWebSearcher
	spk *mockSpeaker
	c   *Controller
	s   *fakeSurface
}

func newFixture() *fixture {
	f := &fixture{
		tr:  &mockTranslator{},
		doc: &mockDocuments{},
		src: &mockSearcher{},
		web: &mockWebSearcher{},
		spk: &mockSpeaker{},
		s:   newFakeSurface(),
	}
	f.c = New(f.tr, f.doc, f.src, f.web, f.spk)
	return f
}

// --- Translate ---

func TestTranslate_Success(t *testing.T) {
	f := newFixture()
	f.tr.result = translation.Result{Text: "Xin chào", Source: language.English, Target: language.Vietnamese}

	if err := f.c.Translate(context.Background(), f.s, "  Hello ", language.English, language.Vietnamese); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if f.tr.lastReq.Text() != "Hello" {
		t.Errorf("text = %q, want trimmed", f.tr.lastReq.Text())
	}
	if f.s.translation == nil || f.s.translation.Text != "Xin chào" {
		t.Fatalf("translation not shown: %+v", f.s.translation)
	}
	if got := f.s.translation.ConfidenceLabel(); got != "Confidence: 99%" {
		t.Errorf("confidence = %q", got)
	}
	want := notice.New(notice.Success, "Translation completed successfully")
	if f.s.last() != want {
		t.Errorf("notice = %+v", f.s.last())
	}
	if f.s.busy[ControlTranslate] {
		t.Error("control should be released")
	}
}

func TestTranslate_LocalValidationSkipsBackend(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		source, target language.Code
		want           string
	}{
		{"empty text", "   ", language.English, language.Vietnamese, "Please enter text to translate"},
		{"same language", "hi", language.English, language.English, "Source and target languages must be different"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			err := f.c.Translate(context.Background(), f.s, tc.text, tc.source, tc.target)
			if !domain.IsValidation(err) {
				t.Fatalf("err = %v, want validation", err)
			}
			if f.tr.calls != 0 {
				t.Errorf("backend calls = %d, want 0", f.tr.calls)
			}
			if got := f.s.last(); got.Level != notice.Warning || got.Message != tc.want {
				t.Errorf("notice = %+v", got)
			}
			if f.s.busy[ControlTranslate] {
				t.Error("control should be released after validation failure")
			}
		})
	}
}

func TestTranslate_BackendDetail(t *testing.T) {
	f := newFixture()
	f.tr.err = fmt.Errorf("translate: %w", &detailError{detail: "Unsupported language pair"})

	err := f.c.Translate(context.Background(), f.s, "hi", language.English, language.Vietnamese)
	if err == nil {
		t.Fatal("expected error")
	}
	want := notice.New(notice.Danger, "Error: Unsupported language pair")
	if f.s.last() != want {
		t.Errorf("notice = %+v", f.s.last())
	}
}

func TestTranslate_TransportErrorIsGeneric(t *testing.T) {
	f := newFixture()
	f.tr.err = errors.New("dial tcp: connection refused")

	_ = f.c.Translate(context.Background(), f.s, "hi", language.English, language.Vietnamese)
	want := notice.New(notice.Danger, "Error: Translation failed")
	if f.s.last() != want {
		t.Errorf("notice = %+v", f.s.last())
	}
	if f.s.busy[ControlTranslate] {
		t.Error("control should be released after failure")
	}
}

func TestTranslate_BusyControlDropsEvent(t *testing.T) {
	f := newFixture()
	f.s.busy[ControlTranslate] = true
	before := testutil.ToFloat64(metrics.UIDroppedEventsTotal.WithLabelValues(string(ControlTranslate)))

	err := f.c.Translate(context.Background(), f.s, "hi", language.English, language.Vietnamese)
	if !errors.Is(err, domain.ErrControlBusy) {
		t.Fatalf("err = %v, want dropped", err)
	}
	if f.tr.calls != 0 {
		t.Errorf("backend calls = %d", f.tr.calls)
	}
	if len(f.s.notices) != 0 {
		t.Errorf("dropped event should be silent, got %+v", f.s.notices)
	}
	if len(f.s.released) != 0 {
		t.Error("dropped event must not release a control it does not hold")
	}
	after := testutil.ToFloat64(metrics.UIDroppedEventsTotal.WithLabelValues(string(ControlTranslate)))
	if after-before != 1 {
		t.Errorf("dropped counter delta = %v", after-before)
	}
}

func TestSwapLanguages(t *testing.T) {
	f := newFixture()
	s, tg := f.c.SwapLanguages(language.English, language.Vietnamese)
	if s != language.Vietnamese || tg != language.English {
		t.Errorf("swap = %s,%s", s, tg)
	}
}

func TestLanguages_FallbackOnError(t *testing.T) {
	f := newFixture()
	f.tr.pairs = language.DefaultPairs()
	f.tr.pairErr = errors.New("down")
	if got := f.c.Languages(context.Background()); len(got) != 2 {
		t.Errorf("pairs = %v", got)
	}
}

// --- Documents ---

func TestSubmitDocument_CreateRefreshesOnce(t *testing.T) {
	f := newFixture()
	f.doc.receipt = document.Receipt{ID: "1", Message: `Document "Notes" uploaded successfully!`}

	next, err := f.c.SubmitDocument(context.Background(), f.s, form.Create(),
		document.Draft{Title: "Notes", Content: "Body", Language: language.English})
	if err != nil {
		t.Fatalf("SubmitDocument: %v", err)
	}
	if _, ok := f.doc.lastCmd.(document.CreateDocument); !ok {
		t.Errorf("command = %T", f.doc.lastCmd)
	}
	if next.IsEditing() {
		t.Error("state should be Create")
	}
	if f.doc.listCalls != 1 {
		t.Errorf("list refreshes = %d, want 1", f.doc.listCalls)
	}
	if f.s.resets != 1 {
		t.Errorf("form resets = %d", f.s.resets)
	}
	if got := f.s.notices[0]; got.Level != notice.Success || got.Message != f.doc.receipt.Message {
		t.Errorf("notice = %+v", got)
	}
}

func TestSubmitDocument_UpdateUsesEditedID(t *testing.T) {
	f := newFixture()
	f.doc.receipt = document.Receipt{ID: "7", Message: "ok"}

	next, err := f.c.SubmitDocument(context.Background(), f.s, form.Edit("7"),
		document.Draft{Title: "T", Content: "C", Language: language.Vietnamese})
	if err != nil {
		t.Fatalf("SubmitDocument: %v", err)
	}
	cmd, ok := f.doc.lastCmd.(document.UpdateDocument)
	if !ok || cmd.ID != "7" {
		t.Errorf("command = %#v", f.doc.lastCmd)
	}
	if next.IsEditing() {
		t.Error("successful update should reset to Create")
	}
	if f.doc.listCalls != 1 {
		t.Errorf("list refreshes = %d", f.doc.listCalls)
	}
}

func TestSubmitDocument_ValidationKeepsState(t *testing.T) {
	f := newFixture()
	state := form.Edit("3")

	next, err := f.c.SubmitDocument(context.Background(), f.s, state,
		document.Draft{Title: "", Content: "x", Language: language.English})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if next != state {
		t.Errorf("state = %+v, want unchanged", next)
	}
	if f.doc.submitCalls != 0 || f.doc.listCalls != 0 {
		t.Errorf("calls submit=%d list=%d", f.doc.submitCalls, f.doc.listCalls)
	}
	if got := f.s.last(); got.Message != "Please enter title and content" {
		t.Errorf("notice = %+v", got)
	}
}

func TestSubmitDocument_OversizedFileRejectedLocally(t *testing.T) {
	f := newFixture()
	draft := document.Draft{
		Language: language.English,
		File:     &document.File{Name: "big.txt", Size: document.MaxFileSize + 1},
	}

	_, err := f.c.SubmitDocument(context.Background(), f.s, form.Create(), draft)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if f.doc.submitCalls != 0 {
		t.Error("no upload request expected")
	}
	if f.s.last().Level != notice.Warning {
		t.Errorf("notice = %+v", f.s.last())
	}
}

func TestSubmitDocument_FailureFallbacks(t *testing.T) {
	tests := []struct {
		state form.State
		want  string
	}{
		{form.Create(), "Error: Upload failed"},
		{form.Edit("1"), "Error: Update failed"},
	}
	for _, tc := range tests {
		f := newFixture()
		f.doc.submitErr = errors.New("timeout")

		next, err := f.c.SubmitDocument(context.Background(), f.s, tc.state,
			document.Draft{Title: "T", Content: "C", Language: language.English})
		if err == nil {
			t.Fatal("expected error")
		}
		if next != tc.state {
			t.Errorf("state changed on failure")
		}
		if f.doc.listCalls != 0 {
			t.Errorf("no refresh expected on failure, got %d", f.doc.listCalls)
		}
		if got := f.s.last(); got.Message != tc.want {
			t.Errorf("notice = %q, want %q", got.Message, tc.want)
		}
	}
}

func TestLoadDocuments(t *testing.T) {
	f := newFixture()
	f.doc.docs = []document.Document{{ID: "1", Title: "A", CreatedAt: time.Now()}}

	if err := f.c.LoadDocuments(context.Background(), f.s); err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}
	if len(f.s.documents) != 1 {
		t.Errorf("documents = %v", f.s.documents)
	}
}

func TestLoadDocuments_FailureIsDanger(t *testing.T) {
	f := newFixture()
	f.doc.listErr = errors.New("down")

	if err := f.c.LoadDocuments(context.Background(), f.s); err == nil {
		t.Fatal("expected error")
	}
	if f.s.last().Level != notice.Danger {
		t.Errorf("notice = %+v", f.s.last())
	}
	if f.s.shownDocs != 0 {
		t.Error("list should not render on failure")
	}
}

func TestViewDocument(t *testing.T) {
	f := newFixture()
	f.doc.getDoc = document.Document{Title: "Full", Content: "everything"}

	if err := f.c.ViewDocument(context.Background(), f.s, "9"); err != nil {
		t.Fatalf("ViewDocument: %v", err)
	}
	if f.s.viewed == nil || f.s.viewed.ID != "9" || f.s.viewed.Content != "everything" {
		t.Errorf("viewed = %+v", f.s.viewed)
	}
}

func TestEditAndCancel(t *testing.T) {
	f := newFixture()
	f.doc.getDoc = document.Document{Title: "Draft"}

	state, err := f.c.EditDocument(context.Background(), f.s, form.Create(), "4")
	if err != nil {
		t.Fatalf("EditDocument: %v", err)
	}
	if state.EditingID() != "4" {
		t.Errorf("state = %+v", state)
	}
	if f.s.edited == nil || f.s.edited.Title != "Draft" {
		t.Errorf("form not populated: %+v", f.s.edited)
	}
	if got := f.s.last(); got.Level != notice.Info || !strings.Contains(got.Message, "Draft") {
		t.Errorf("notice = %+v", got)
	}

	state = f.c.CancelEdit(f.s)
	if state.IsEditing() || f.s.resets != 1 {
		t.Errorf("cancel: state=%+v resets=%d", state, f.s.resets)
	}
}

func TestEditDocument_FailureKeepsState(t *testing.T) {
	f := newFixture()
	f.doc.getErr = &detailError{detail: "Document not found"}

	state, err := f.c.EditDocument(context.Background(), f.s, form.Edit("1"), "2")
	if err == nil {
		t.Fatal("expected error")
	}
	if state.EditingID() != "1" {
		t.Errorf("state = %+v", state)
	}
	if got := f.s.last().Message; got != "Error: Document not found" {
		t.Errorf("notice = %q", got)
	}
}

func TestDeleteDocument_Declined(t *testing.T) {
	f := newFixture()
	f.s.confirm = false

	state, err := f.c.DeleteDocument(context.Background(), f.s, form.Edit("5"), "5")
	if err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if f.doc.deleteCalls != 0 || f.doc.listCalls != 0 {
		t.Errorf("calls delete=%d list=%d", f.doc.deleteCalls, f.doc.listCalls)
	}
	if state.EditingID() != "5" {
		t.Error("declined delete must keep state")
	}
	if len(f.s.prompts) != 1 || f.s.prompts[0] != DeletePrompt {
		t.Errorf("prompts = %v", f.s.prompts)
	}
}

func TestDeleteDocument_ResetsEditedDocument(t *testing.T) {
	f := newFixture()

	state, err := f.c.DeleteDocument(context.Background(), f.s, form.Edit("5"), "5")
	if err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if state.IsEditing() {
		t.Error("deleting the edited document should reset to Create")
	}
	if f.s.resets != 1 {
		t.Errorf("resets = %d", f.s.resets)
	}
	if f.doc.deleteCalls != 1 || f.doc.listCalls != 1 {
		t.Errorf("calls delete=%d list=%d", f.doc.deleteCalls, f.doc.listCalls)
	}
	if f.s.notices[0] != notice.New(notice.Success, "Document deleted successfully") {
		t.Errorf("notice = %+v", f.s.notices[0])
	}
}

func TestDeleteDocument_OtherDocumentKeepsEdit(t *testing.T) {
	f := newFixture()

	state, _ := f.c.DeleteDocument(context.Background(), f.s, form.Edit("5"), "6")
	if state.EditingID() != "5" {
		t.Errorf("state = %+v", state)
	}
	if f.s.resets != 0 {
		t.Errorf("resets = %d", f.s.resets)
	}
}

func TestDeleteDocument_Failure(t *testing.T) {
	f := newFixture()
	f.doc.deleteErr = errors.New("500")

	if _, err := f.c.DeleteDocument(context.Background(), f.s, form.Create(), "1"); err == nil {
		t.Fatal("expected error")
	}
	if f.doc.listCalls != 0 {
		t.Error("no refresh expected after failed delete")
	}
	if got := f.s.last().Message; got != "Error: Delete failed" {
		t.Errorf("notice = %q", got)
	}
}

// --- Search ---

func TestSearch_EmptyQuerySkipsBackend(t *testing.T) {
	f := newFixture()

	err := f.c.Search(context.Background(), f.s, "  ", 5)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if f.src.calls != 0 {
		t.Error("no search request expected")
	}
	if got := f.s.last(); got != notice.New(notice.Warning, "Please enter a search query") {
		t.Errorf("notice = %+v", got)
	}
}

func TestSearch_TopKBounds(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 5},
		{-3, 5},
		{7, 7},
		{500, 50},
	}
	for _, tc := range tests {
		f := newFixture()
		if err := f.c.Search(context.Background(), f.s, "go", tc.in); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if got := f.src.lastQ.Limit(); got != tc.want {
			t.Errorf("topK(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSearch_ZeroResults(t *testing.T) {
	f := newFixture()
	f.src.page = search.Page{Query: "none"}

	if err := f.c.Search(context.Background(), f.s, "none", 0); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if f.s.page == nil || !f.s.page.Empty() {
		t.Errorf("page = %+v", f.s.page)
	}
}

func TestSearch_Failure(t *testing.T) {
	f := newFixture()
	f.src.err = errors.New("boom")

	_ = f.c.Search(context.Background(), f.s, "go", 0)
	if got := f.s.last().Message; got != "Error: Search failed" {
		t.Errorf("notice = %q", got)
	}
	if f.s.busy[ControlSearch] {
		t.Error("control should be released")
	}
}

func TestClearSearch_RestoresListing(t *testing.T) {
	f := newFixture()
	f.doc.docs = []document.Document{{ID: "1"}}

	if err := f.c.ClearSearch(context.Background(), f.s); err != nil {
		t.Fatalf("ClearSearch: %v", err)
	}
	if f.s.cleared != 1 || f.doc.listCalls != 1 {
		t.Errorf("cleared=%d list=%d", f.s.cleared, f.doc.listCalls)
	}
}

func TestWebSearch_LimitBounds(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 5},
		{3, 3},
		{99, 20},
	}
	for _, tc := range tests {
		f := newFixture()
		if err := f.c.WebSearch(context.Background(), f.s, "weather", tc.in); err != nil {
			t.Fatalf("WebSearch: %v", err)
		}
		if got := f.web.lastQ.Limit(); got != tc.want {
			t.Errorf("limit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestWebSearch_EmptyAndFailure(t *testing.T) {
	f := newFixture()
	if err := f.c.WebSearch(context.Background(), f.s, "", 0); !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if f.web.calls != 0 {
		t.Error("no request expected")
	}

	f.web.err = errors.New("timeout")
	_ = f.c.WebSearch(context.Background(), f.s, "x", 0)
	if got := f.s.last().Message; got != "Error: Web search failed" {
		t.Errorf("notice = %q", got)
	}
}

func TestWithLimits(t *testing.T) {
	f := newFixture()
	f.c.WithLimits(Limits{DefaultTopK: 3, MaxTopK: 10})

	_ = f.c.Search(context.Background(), f.s, "q", 0)
	if got := f.src.lastQ.Limit(); got != 3 {
		t.Errorf("default topK = %d", got)
	}
	_ = f.c.Search(context.Background(), f.s, "q", 40)
	if got := f.src.lastQ.Limit(); got != 10 {
		t.Errorf("clamped topK = %d", got)
	}
	if got := f.c.Limits().MaxWebLimit; got != search.MaxWebLimit {
		t.Errorf("zero field should keep default, got %d", got)
	}
}

// --- Speak ---

func TestSpeak_LanguageFromTarget(t *testing.T) {
	tests := []struct {
		target language.Code
		want   language.Code
	}{
		{language.Vietnamese, language.Vietnamese},
		{language.English, language.English},
		{language.Code("fr"), language.English},
	}
	for _, tc := range tests {
		f := newFixture()
		f.spk.audio = speech.Audio{ContentType: "audio/mpeg", Data: []byte{1}}

		if err := f.c.Speak(context.Background(), f.s, "xin chào", tc.target, ""); err != nil {
			t.Fatalf("Speak: %v", err)
		}
		if f.spk.lastReq.Language != tc.want {
			t.Errorf("language(%s) = %s, want %s", tc.target, f.spk.lastReq.Language, tc.want)
		}
		if f.spk.lastReq.Rate != 1.0 || f.spk.lastReq.Pitch != 0 {
			t.Errorf("rate/pitch = %v/%v", f.spk.lastReq.Rate, f.spk.lastReq.Pitch)
		}
		if f.s.audio == nil {
			t.Error("audio not played")
		}
	}
}

func TestSpeak_PassesVoice(t *testing.T) {
	f := newFixture()
	f.spk.audio = speech.Audio{ContentType: "audio/mpeg", Data: []byte{1}}

	if err := f.c.Speak(context.Background(), f.s, "hello", language.English, "en-uk"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if f.spk.lastReq.Voice != "en-uk" {
		t.Errorf("voice = %q", f.spk.lastReq.Voice)
	}
}

func TestVoices(t *testing.T) {
	f := newFixture()
	f.spk.voices = []speech.Voice{{Key: "vi", Name: "HoaiMy", Language: language.Vietnamese}}
	if got := f.c.Voices(context.Background()); len(got) != 1 || got[0].Key != "vi" {
		t.Errorf("voices = %+v", got)
	}

	f.spk.voicesErr = errors.New("down")
	if got := f.c.Voices(context.Background()); got != nil {
		t.Errorf("voices on error = %+v", got)
	}
	if len(f.s.notices) != 0 {
		t.Errorf("voices fallback must not notify: %+v", f.s.notices)
	}
}

func TestSpeak_EmptyAndTooLong(t *testing.T) {
	f := newFixture()
	if err := f.c.Speak(context.Background(), f.s, "", language.English, ""); !domain.IsValidation(err) {
		t.Fatalf("empty: err = %v", err)
	}
	long := strings.Repeat("a", speech.MaxTextRunes+1)
	if err := f.c.Speak(context.Background(), f.s, long, language.English, ""); !domain.IsValidation(err) {
		t.Fatalf("long: err = %v", err)
	}
	if f.spk.calls != 0 {
		t.Errorf("speak calls = %d", f.spk.calls)
	}
}

func TestSpeak_SecondEventDroppedWhileBusy(t *testing.T) {
	f := newFixture()
	f.s.busy[ControlSpeak] = true

	if err := f.c.Speak(context.Background(), f.s, "hi", language.English, ""); !errors.Is(err, domain.ErrControlBusy) {
		t.Fatalf("err = %v", err)
	}
	if f.spk.calls != 0 {
		t.Error("no request expected while busy")
	}
}

func TestReject_CountsNotice(t *testing.T) {
	f := newFixture()
	before := testutil.ToFloat64(metrics.UINoticesTotal.WithLabelValues(string(notice.Warning)))

	f.c.Reject(context.Background(), f.s, domain.NewValidationError("file", "File is too large (max 16 B)"), "Invalid upload")

	if len(f.s.notices) != 1 || f.s.notices[0].Level != notice.Warning ||
		f.s.notices[0].Message != "File is too large (max 16 B)" {
		t.Errorf("notices = %+v", f.s.notices)
	}
	after := testutil.ToFloat64(metrics.UINoticesTotal.WithLabelValues(string(notice.Warning)))
	if after-before != 1 {
		t.Errorf("warning counter delta = %v", after-before)
	}
}

func TestNotices_AreCounted(t *testing.T) {
	f := newFixture()
	before := testutil.ToFloat64(metrics.UINoticesTotal.WithLabelValues(string(notice.Warning)))

	_ = f.c.Search(context.Background(), f.s, "", 0)

	after := testutil.ToFloat64(metrics.UINoticesTotal.WithLabelValues(string(notice.Warning)))
	if after-before != 1 {
		t.Errorf("warning counter delta = %v", after-before)
	}
}
