package backend

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	maxAudio   int64

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithHTTPClient replaces the underlying HTTP client. WithTimeout is ignored
// when a client is provided.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return optionFunc(func(c *clientConfig) {
		c.userAgent = ua
	})
}

// WithMaxAudioBytes caps the size of a synthesized clip. Larger replies fail
// with ErrAudioTooLarge. Default: 64MiB.
func WithMaxAudioBytes(n int64) Option {
	return optionFunc(func(c *clientConfig) {
		if n > 0 {
			c.maxAudio = n
		}
	})
}

// WithLogger enables structured logging of backend calls.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (call counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
