// Package http provides the URL reachability checker used by the
// generation pipeline's pre-flight, and sitemap-based URL discovery.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/schemamark/schemamark"
)

// DefaultCheckTimeout bounds one reachability probe.
const DefaultCheckTimeout = 10 * time.Second

// Ensure Checker implements schemamark.URLChecker at compile time.
var _ schemamark.URLChecker = (*Checker)(nil)

// Checker probes URLs over HTTP before any credits or browser time are
// spent on them. It tries HEAD first and falls back to GET, since some
// servers reject or misreport HEAD.
type Checker struct {
	client  *http.Client
	timeout time.Duration
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithCheckTimeout sets the per-probe timeout.
func WithCheckTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) {
		c.timeout = d
	}
}

// WithClient sets the HTTP client, mainly for tests.
func WithClient(client *http.Client) CheckerOption {
	return func(c *Checker) {
		c.client = client
	}
}

// NewChecker creates a new Checker.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{timeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// CheckURL returns nil when the URL resolves and responds with a
// non-server-error status. Returns EUNREACHABLE otherwise.
func (c *Checker) CheckURL(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if ok := c.probe(ctx, http.MethodHead, url); ok {
		return nil
	}
	if ok := c.probe(ctx, http.MethodGet, url); ok {
		return nil
	}

	return schemamark.Errorf(schemamark.EUNREACHABLE, "URL is not reachable: %s", url)
}

// probe reports whether one request to the URL got a usable response.
// Client errors other than 404/410 still count as reachable: a 403 from a
// bot-hostile server renders fine in the real browser.
func (c *Checker) probe(ctx context.Context, method, url string) bool {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return false
	case resp.StatusCode >= 500:
		return false
	case resp.StatusCode == http.StatusMethodNotAllowed && method == http.MethodHead:
		return false
	}
	return true
}
