package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultPort is the port the backend listens on by default.
	DefaultPort = "8000"

	maxResponseBytes = 16 << 20
	maxAudioBytes    = 64 << 20
	maxErrorBytes    = 64 << 10
)

// DefaultBaseURL returns the backend URL for host on the default port.
// An empty host means localhost.
func DefaultBaseURL(host string) string {
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, DefaultPort)
}

// Client is a backend API client. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	maxAudio  int64
	obs       *observer
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout, maxAudio: maxAudioBytes}
	for _, o := range opts {
		o.apply(cfg)
	}

	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("backend: base URL must be absolute http(s), got %q", baseURL)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{base: u, http: hc, userAgent: cfg.userAgent, maxAudio: cfg.maxAudio, obs: obs}, nil
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) url(segments ...string) string {
	elems := make([]string, 0, len(segments)+1)
	elems = append(elems, "api")
	for _, s := range segments {
		elems = append(elems, url.PathEscape(s))
	}
	return c.base.JoinPath(elems...).String()
}

// callJSON sends in as a JSON body (when non-nil) and decodes the response into out.
func (c *Client) callJSON(ctx context.Context, op, method, target string, in, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.call(ctx, op, method, target, body, contentType, out)
}

func (c *Client) call(
	ctx context.Context, op, method, target string, body io.Reader, contentType string, out any,
) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(op, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return decode(op, resp.Body, out)
}

// send executes req and converts non-2xx responses into *APIError.
func (c *Client) send(op string, req *http.Request) (*http.Response, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, newAPIError(op, resp.StatusCode, body)
	}
	return resp, nil
}

func decode(op string, r io.Reader, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(r, maxResponseBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(r, maxResponseBytes)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return malformed(op, "empty body")
		}
		return malformed(op, "decode: %v", err)
	}
	if v, ok := out.(validator); ok {
		return v.validate(op)
	}
	return nil
}
