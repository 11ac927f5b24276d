package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lingodesk/internal/controller"
	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/form"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/internal/logger"
	"github.com/kailas-cloud/lingodesk/internal/metrics"
	healthuc "github.com/kailas-cloud/lingodesk/internal/usecase/health"
	"github.com/kailas-cloud/lingodesk/internal/view"
)

// SessionStore keeps per-browser form state and control locks.
type SessionStore interface {
	LoadState(ctx context.Context, sid string) (form.State, error)
	SaveState(ctx context.Context, sid string, st form.State) error
	Acquire(ctx context.Context, sid, control string) (bool, error)
	Release(ctx context.Context, sid, control string) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Options holds presentation settings.
type Options struct {
	Title          string
	Cookie         CookieConfig
	PreviewRunes   int
	NoticeTTL      time.Duration
	MaxUploadBytes int64
}

func (o *Options) applyDefaults() {
	if o.Title == "" {
		o.Title = "LingoDesk"
	}
	if o.PreviewRunes <= 0 {
		o.PreviewRunes = document.DefaultPreviewRunes
	}
	if o.NoticeTTL <= 0 {
		o.NoticeTTL = 5 * time.Second
	}
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = document.MaxFileSize
	}
}

// Server is the browser surface: it turns HTTP requests into controller
// events and answers with htmx fragments.
type Server struct {
	ctrl     *controller.Controller
	sessions SessionStore
	health   HealthChecker
	view     *view.Renderer
	opts     Options
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.RWMutex
	languages []language.Code
	voices    []speech.Voice
}

// NewServer creates the web surface.
func NewServer(
	ctrl *controller.Controller,
	sessions SessionStore,
	health HealthChecker,
	renderer *view.Renderer,
	opts Options,
	logger *zap.Logger,
) *Server {
	opts.applyDefaults()
	return &Server{
		ctrl:      ctrl,
		sessions:  sessions,
		health:    health,
		view:      renderer,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
		languages: language.Options(language.DefaultPairs()),
	}
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())
	r.Use(SessionMiddleware(s.opts.Cookie))

	r.Get("/", s.Index)

	r.Post("/translate", s.Translate)
	r.Post("/translate/swap", s.SwapLanguages)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Post("/", s.SubmitDocument)
		r.Post("/cancel", s.CancelEdit)
		r.Get("/{id}", s.ViewDocument)
		r.Post("/{id}/edit", s.EditDocument)
		r.Post("/{id}/delete", s.DeleteDocument)
	})

	r.Post("/search", s.Search)
	r.Post("/search/clear", s.ClearSearch)
	r.Post("/search/web", s.WebSearch)
	r.Post("/speak", s.Speak)

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) codes() []language.Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.languages
}

func (s *Server) setCodes(codes []language.Code) {
	if len(codes) == 0 {
		return
	}
	s.mu.Lock()
	s.languages = codes
	s.mu.Unlock()
}

func (s *Server) voiceList() []speech.Voice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voices
}

func (s *Server) setVoices(voices []speech.Voice) {
	if len(voices) == 0 {
		return
	}
	s.mu.Lock()
	s.voices = voices
	s.mu.Unlock()
}

func (s *Server) newSurface(r *http.Request) *surface {
	return &surface{
		sid:       SessionID(r.Context()),
		locks:     s.sessions,
		languages: s.codes(),
		voices:    s.voiceList(),
		opts:      s.opts,
		now:       s.now,
	}
}

// loadState reads the session's form state. A broken session starts over in
// create mode.
func (s *Server) loadState(ctx context.Context) form.State {
	st, err := s.sessions.LoadState(ctx, SessionID(ctx))
	if err != nil {
		logger.FromContext(ctx).Warn("load session state", zap.Error(err))
	}
	return st
}

func (s *Server) saveState(ctx context.Context, prev, next form.State) {
	if prev == next {
		return
	}
	if err := s.sessions.SaveState(ctx, SessionID(ctx), next); err != nil {
		logger.FromContext(ctx).Warn("save session state", zap.Error(err))
	}
}

// writeParts renders the collected components. htmx only swaps 2xx
// responses, so failures are reported through notices with status 200.
func (s *Server) writeParts(w http.ResponseWriter, r *http.Request, surf *surface) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := s.view.Render(w, surf.parts...); err != nil {
		logger.FromContext(r.Context()).Error("render fragment", zap.Error(err))
	}
}
