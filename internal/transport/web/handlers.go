package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/form"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/logger"
	"github.com/kailas-cloud/lingodesk/internal/version"
	"github.com/kailas-cloud/lingodesk/internal/view"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 1 << 20

// Index handles GET /. The document list, the language pairs and the speech
// voices are loaded concurrently. A reload leaves edit mode.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	surf := s.newSurface(r)

	var pairs []language.Pair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pairs = s.ctrl.Languages(gctx)
		return nil
	})
	g.Go(func() error {
		s.setVoices(s.ctrl.Voices(gctx))
		return nil
	})
	g.Go(func() error {
		// failure is already rendered as a notice
		_ = s.ctrl.LoadDocuments(gctx, surf)
		return nil
	})
	_ = g.Wait()

	codes := language.Options(pairs)
	s.setCodes(codes)
	codes = s.codes()
	s.saveState(ctx, s.loadState(ctx), form.Create())

	docs := view.Documents(nil, s.opts.PreviewRunes, s.now())
	if surf.documents != nil {
		docs = *surf.documents
	}
	source, target := language.English, language.Vietnamese
	if len(pairs) > 0 {
		source, target = pairs[0].From, pairs[0].To
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.view.Page(w, view.PageView{
		Title:      s.opts.Title,
		Version:    version.String(),
		Translator: view.Translator("", codes, source, target),
		Form:       view.EmptyForm(codes, s.opts.MaxUploadBytes),
		Documents:  docs,
		Notices:    surf.notices,
	})
	if err != nil {
		logger.FromContext(ctx).Error("render page", zap.Error(err))
	}
}

// Translate handles POST /translate.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	_ = s.ctrl.Translate(r.Context(), surf,
		r.FormValue("text"), parseCode(r.FormValue("source")), parseCode(r.FormValue("target")))
	s.writeParts(w, r, surf)
}

// SwapLanguages handles POST /translate/swap.
func (s *Server) SwapLanguages(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	source, target := s.ctrl.SwapLanguages(parseCode(r.FormValue("source")), parseCode(r.FormValue("target")))
	surf.add(view.NameTranslator, view.Translator(r.FormValue("text"), surf.languages, source, target))
	s.writeParts(w, r, surf)
}

// SubmitDocument handles POST /documents: create, upload or update depending
// on the session's form state.
func (s *Server) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	surf := s.newSurface(r)

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.ctrl.Reject(ctx, surf, domain.NewValidationError("file",
				fmt.Sprintf("File is too large (max %s)", humanize.IBytes(uint64(s.opts.MaxUploadBytes)))), "")
		} else {
			s.ctrl.Reject(ctx, surf, domain.NewValidationError("file", "Invalid upload"), "")
		}
		s.writeParts(w, r, surf)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	draft := document.Draft{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Language: parseCode(r.FormValue("language")),
		File:     uploadedFile(r),
	}

	prev := s.loadState(ctx)
	next, _ := s.ctrl.SubmitDocument(ctx, surf, prev, draft)
	s.saveState(ctx, prev, next)
	s.writeParts(w, r, surf)
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	_ = s.ctrl.LoadDocuments(r.Context(), surf)
	s.writeParts(w, r, surf)
}

// ViewDocument handles GET /documents/{id}.
func (s *Server) ViewDocument(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	if id, ok := s.docID(r, surf); ok {
		_ = s.ctrl.ViewDocument(r.Context(), surf, id)
	}
	s.writeParts(w, r, surf)
}

// EditDocument handles POST /documents/{id}/edit.
func (s *Server) EditDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	surf := s.newSurface(r)
	if id, ok := s.docID(r, surf); ok {
		prev := s.loadState(ctx)
		next, _ := s.ctrl.EditDocument(ctx, surf, prev, id)
		s.saveState(ctx, prev, next)
	}
	s.writeParts(w, r, surf)
}

// CancelEdit handles POST /documents/cancel.
func (s *Server) CancelEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	surf := s.newSurface(r)
	prev := s.loadState(ctx)
	s.saveState(ctx, prev, s.ctrl.CancelEdit(surf))
	s.writeParts(w, r, surf)
}

// DeleteDocument handles POST /documents/{id}/delete. Without confirm=yes it
// only renders the confirmation dialog.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	surf := s.newSurface(r)
	if id, ok := s.docID(r, surf); ok {
		surf.deleting = id
		surf.confirmed = r.FormValue("confirm") == "yes"
		prev := s.loadState(ctx)
		next, _ := s.ctrl.DeleteDocument(ctx, surf, prev, id)
		s.saveState(ctx, prev, next)
	}
	s.writeParts(w, r, surf)
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	_ = s.ctrl.Search(r.Context(), surf, r.FormValue("query"), search.ParseLimit(r.FormValue("top_k"), 0))
	s.writeParts(w, r, surf)
}

// ClearSearch handles POST /search/clear.
func (s *Server) ClearSearch(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	_ = s.ctrl.ClearSearch(r.Context(), surf)
	s.writeParts(w, r, surf)
}

// WebSearch handles POST /search/web.
func (s *Server) WebSearch(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	_ = s.ctrl.WebSearch(r.Context(), surf, r.FormValue("query"), search.ParseLimit(r.FormValue("limit"), 0))
	s.writeParts(w, r, surf)
}

// Speak handles POST /speak.
func (s *Server) Speak(w http.ResponseWriter, r *http.Request) {
	surf := s.newSurface(r)
	_ = s.ctrl.Speak(r.Context(), surf, r.FormValue("text"), parseCode(r.FormValue("target")), r.FormValue("voice"))
	s.writeParts(w, r, surf)
}

// docID reads the {id} URL parameter, reporting a warning when it is unusable.
func (s *Server) docID(r *http.Request, surf *surface) (document.ID, bool) {
	id, err := document.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.ctrl.Reject(r.Context(), surf, err, "Invalid document ID")
		return "", false
	}
	return id, true
}

// parseCode canonicalizes a language form value. Unknown values become empty
// and are rejected by validation.
func parseCode(raw string) language.Code {
	c, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	return c
}

// uploadedFile returns the optional "file" part. An empty file input submits
// a part without a file name, which counts as no file.
func uploadedFile(r *http.Request) *document.File {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 || strings.TrimSpace(headers[0].Filename) == "" {
		return nil
	}
	fh := headers[0]
	return &document.File{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return openPart(fh) },
	}
}

func openPart(fh *multipart.FileHeader) (io.ReadCloser, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	return f, nil
}
