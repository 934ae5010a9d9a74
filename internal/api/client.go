// Package api implements the single chokepoint for talking to the remote
// booking API: JSON requests with bearer auth and a uniform error contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bookhub/bookhub/internal/config"
	"github.com/bookhub/bookhub/internal/errs"
)

// HeaderSource supplies the auth headers to attach to outgoing requests. It is
// consulted on every call so the headers always reflect the current token.
type HeaderSource interface {
	AuthHeaders() map[string]string
}

// Client issues authenticated JSON requests against a configured base URL.
// It is the only component allowed to read the session's token.
type Client struct {
	base    string
	httpc   *http.Client
	headers HeaderSource
	onAuth  func() // invoked on a 401-class response before the error surfaces
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the structured logger (Nop by default).
func WithLogger(log *zap.Logger) Option { return func(c *Client) { c.log = log } }

// WithHTTPClient overrides the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpc = h } }

// New constructs a Client from configuration.
func New(cfg config.Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	c := &Client{
		base:  strings.TrimRight(cfg.BaseURL, "/"),
		httpc: &http.Client{Timeout: timeout},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BindHeaders attaches the session's header source. Until bound, requests go
// out unauthenticated.
func (c *Client) BindHeaders(h HeaderSource) { c.headers = h }

// OnUnauthorized registers the session-teardown hook invoked when the server
// answers 401.
func (c *Client) OnUnauthorized(f func()) { c.onAuth = f }

// BaseURL reports the resolved API base.
func (c *Client) BaseURL() string { return c.base }

// Get issues GET path and decodes the 2xx JSON body into out (skipped if nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues POST path with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// PostCredentials posts to an authentication endpoint. No bearer is attached
// and a 401 is a credentials failure surfaced as an APIError, not a session
// teardown.
func (c *Client) PostCredentials(ctx context.Context, path string, body, out any) error {
	return c.doRaw(ctx, http.MethodPost, path, body, out, false)
}

// Put issues PUT path with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE path.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doRaw(ctx, method, path, body, out, true)
}

func (c *Client) doRaw(ctx context.Context, method, path string, body, out any, authed bool) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed && c.headers != nil {
		for k, v := range c.headers.AuthHeaders() {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("http", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &errs.NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	c.log.Debug("http",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	if authed && resp.StatusCode == http.StatusUnauthorized {
		if c.onAuth != nil {
			c.onAuth()
		}
		return errs.ErrAuthenticationRequired
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.NetworkError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errs.APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &errs.ProtocolError{StatusCode: resp.StatusCode, Cause: err}
	}
	return nil
}

// errorMessage extracts the server's message field from an error body. Any
// non-2xx status is a failure regardless of body shape.
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return "request failed"
}
