package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/schemamark/schemamark"
)

// DefaultNavigationTimeout bounds page navigation and rendering.
const DefaultNavigationTimeout = 30 * time.Second

// DefaultSettleDelay is how long to wait after DOMContentLoaded for
// late-rendering JS frameworks to paint.
const DefaultSettleDelay = 1500 * time.Millisecond

// Multi-attempt capture parameters: each retry waits longer before
// capturing, and capture stops early once a sample is good enough.
const (
	maxAttempts       = 3
	attemptDelayStep  = 1500 * time.Millisecond
	earlyStopScore    = 0.8
	earlyStopMinChars = 500
)

// Ensure Fetcher implements schemamark.Fetcher at compile time.
var _ schemamark.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages in a shared headless Chrome browser, one isolated
// page per request. Font and stylesheet requests are aborted to speed
// loading; consent overlays are dismissed before capture.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *Manager
	timeout time.Duration
	settle  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the navigation timeout.
// Defaults to DefaultNavigationTimeout (30s).
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay sets the post-load settle delay before capture.
// Defaults to DefaultSettleDelay (1.5s).
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher creates a Fetcher backed by a freshly launched browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewManager()
	if err != nil {
		return nil, err
	}
	return NewFetcherWithManager(manager, opts...), nil
}

// NewFetcherWithManager creates a Fetcher that shares an existing browser
// Manager. The caller retains ownership of the manager's lifetime when
// constructing the fetcher this way is combined with other users.
func NewFetcherWithManager(manager *Manager, opts ...Option) *Fetcher {
	f := &Fetcher{
		manager: manager,
		timeout: DefaultNavigationTimeout,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch renders the URL once and returns the captured page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*schemamark.FetchResult, error) {
	if url == "" {
		return nil, schemamark.Errorf(schemamark.EINVALID, "url required")
	}
	return f.attempt(ctx, url, f.settle, 1)
}

// FetchBest runs up to three render passes with increasing settle delays
// and keeps the highest-scoring capture. SPA and overlay-heavy sites render
// progressively, so a single snapshot can catch a half-loaded or
// banner-obscured DOM. Capture stops early once a sample scores at least
// 0.8 and exceeds 500 characters.
func (f *Fetcher) FetchBest(ctx context.Context, url string) (*schemamark.FetchResult, error) {
	if url == "" {
		return nil, schemamark.Errorf(schemamark.EINVALID, "url required")
	}

	var best *schemamark.FetchResult
	var bestScore float64
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		settle := f.settle + time.Duration(attempt-1)*attemptDelayStep

		result, err := f.attempt(ctx, url, settle, attempt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		score := Score(result.TextSample, result.Stats)
		if best == nil || score > bestScore {
			best, bestScore = result, score
		}
		if score >= earlyStopScore && len(result.TextSample) > earlyStopMinChars {
			break
		}
	}

	if best == nil {
		return nil, lastErr
	}
	return best, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// attempt performs one full render pass: navigate, wait, dismiss overlays,
// capture. The page is always closed, regardless of success or failure.
func (f *Fetcher) attempt(ctx context.Context, url string, settle time.Duration, attemptNumber int) (*schemamark.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.manager.NewPage()
	if err != nil {
		return nil, schemamark.Errorf(schemamark.EUNAVAILABLE, "opening browser page: %v", err)
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := blockHeavyResources(page); err != nil {
		return nil, schemamark.Errorf(schemamark.EUNAVAILABLE, "configuring request interception: %v", err)
	}

	// DOMContentLoaded is the readiness signal rather than network idle:
	// trackers and ad networks may never settle.
	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return nil, schemamark.Errorf(schemamark.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	wait()

	if _, err := page.Element("body"); err != nil {
		return nil, schemamark.Errorf(schemamark.EUNAVAILABLE, "waiting for body: %v", err)
	}

	if err := sleep(ctx, settle); err != nil {
		return nil, err
	}

	dismissOverlays(page, attemptNumber)

	html, err := page.HTML()
	if err != nil {
		return nil, schemamark.Errorf(schemamark.EUNAVAILABLE, "capturing HTML: %v", err)
	}

	sample, stats := capturePageStats(page)

	return &schemamark.FetchResult{
		HTML:       html,
		TextSample: sample,
		Stats:      stats,
	}, nil
}

// blockHeavyResources aborts font and stylesheet requests. They slow
// rendering considerably and contribute nothing to content extraction.
func blockHeavyResources(page *rod.Page) error {
	router := page.HijackRequests()
	err := router.Add("*", "", func(h *rod.Hijack) {
		switch h.Request.Type() {
		case proto.NetworkResourceTypeFont, proto.NetworkResourceTypeStylesheet:
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		default:
			h.ContinueRequest(&proto.FetchContinueRequest{})
		}
	})
	if err != nil {
		return err
	}
	go router.Run()
	return nil
}

// capturePageStats reads structural counts and a visible-text sample from
// the live DOM in one evaluation. Failures yield empty stats; quality
// scoring then falls back to length/diversity signals alone.
func capturePageStats(page *rod.Page) (string, schemamark.PageStats) {
	res, err := page.Eval(`() => ({
		headings: document.querySelectorAll("h1,h2,h3,h4,h5,h6").length,
		paragraphs: document.querySelectorAll("p").length,
		images: document.querySelectorAll("img").length,
		links: document.querySelectorAll("a[href]").length,
		text: document.body ? document.body.innerText.slice(0, 10000) : "",
	})`)
	if err != nil {
		return "", schemamark.PageStats{}
	}

	return res.Value.Get("text").Str(), schemamark.PageStats{
		Headings:   res.Value.Get("headings").Int(),
		Paragraphs: res.Value.Get("paragraphs").Int(),
		Images:     res.Value.Get("images").Int(),
		Links:      res.Value.Get("links").Int(),
	}
}

// sleep waits for d or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
