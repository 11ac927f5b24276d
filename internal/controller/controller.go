package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/logger"
	"github.com/kailas-cloud/lingodesk/internal/metrics"
)

// Limits holds input defaults and bounds.
type Limits struct {
	DefaultTopK     int
	MaxTopK         int
	DefaultWebLimit int
	MaxWebLimit     int
	SpeechRate      float64
	SpeechPitch     int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		DefaultTopK:     search.DefaultTopK,
		MaxTopK:         search.MaxTopK,
		DefaultWebLimit: search.DefaultWebLimit,
		MaxWebLimit:     search.MaxWebLimit,
		SpeechRate:      1.0,
		SpeechPitch:     0,
	}
}

// Controller dispatches user events: it validates input, issues at most one
// backend request per event (plus one list refresh after document changes)
// and reports the outcome to the surface.
type Controller struct {
	translator Translator
	docs       Documents
	search     Searcher
	web        WebSearcher
	speaker    Speaker
	limits     Limits
}

// New creates a Controller.
func New(
	translator Translator, docs Documents, searcher Searcher, web WebSearcher, speaker Speaker,
) *Controller {
	return &Controller{
		translator: translator,
		docs:       docs,
		search:     searcher,
		web:        web,
		speaker:    speaker,
		limits:     DefaultLimits(),
	}
}

// WithLimits overrides input limits. Zero fields keep their defaults.
func (c *Controller) WithLimits(l Limits) *Controller {
	if l.DefaultTopK > 0 {
		c.limits.DefaultTopK = l.DefaultTopK
	}
	if l.MaxTopK > 0 {
		c.limits.MaxTopK = l.MaxTopK
	}
	if l.DefaultWebLimit > 0 {
		c.limits.DefaultWebLimit = l.DefaultWebLimit
	}
	if l.MaxWebLimit > 0 {
		c.limits.MaxWebLimit = l.MaxWebLimit
	}
	if l.SpeechRate > 0 {
		c.limits.SpeechRate = l.SpeechRate
	}
	c.limits.SpeechPitch = l.SpeechPitch
	return c
}

// Limits returns the effective input limits.
func (c *Controller) Limits() Limits { return c.limits }

// acquire disables ctl on the surface. A busy control drops the event.
func (c *Controller) acquire(ctx context.Context, s Surface, ctl Control) error {
	if s.Acquire(ctx, ctl) {
		return nil
	}
	metrics.UIDroppedEventsTotal.WithLabelValues(string(ctl)).Inc()
	logger.FromContext(ctx).Debug("event dropped, control busy", zap.String("control", string(ctl)))
	return domain.ErrControlBusy
}

// notify shows n and counts it.
func notify(s Surface, n notice.Notice) {
	metrics.UINoticesTotal.WithLabelValues(string(n.Level)).Inc()
	s.Notify(n)
}

// Reject reports input the transport could not turn into an event. No
// operation runs.
func (c *Controller) Reject(ctx context.Context, s Surface, err error, fallback string) {
	logger.FromContext(ctx).Debug("input rejected", zap.Error(err))
	notify(s, notice.FromError(err, fallback))
}

// fail reports err on the surface: validation errors as warnings, everything
// else as a danger notice with the backend detail or fallback.
func (c *Controller) fail(ctx context.Context, s Surface, op string, err error, fallback string) error {
	if !domain.IsValidation(err) {
		logger.FromContext(ctx).Warn("operation failed", zap.String("op", op), zap.Error(err))
	}
	notify(s, notice.FromError(err, fallback))
	return err
}
