package schemamark

import "context"

// PageStats holds structural counts observed in the live DOM after
// rendering. They feed the content-quality scorer that picks the best of
// multiple extraction attempts.
type PageStats struct {
	Headings   int
	Paragraphs int
	Images     int
	Links      int
}

// FetchResult is the outcome of rendering a page in the browser.
type FetchResult struct {
	// HTML is the final rendered markup after overlay dismissal.
	HTML string

	// TextSample is the visible body text at capture time, used for
	// quality scoring across attempts. It is not the extracted content.
	TextSample string

	// Stats are structural counts from the live DOM.
	Stats PageStats
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations use browser automation to handle JavaScript-rendered
// content and to dismiss consent overlays before capture.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render, dismisses
	// overlays, and returns the rendered page. The context controls timeout
	// and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// FetchBest runs multiple render passes with increasing settle delays
	// and returns the highest-quality capture. Used when overlay or
	// progressive-rendering interference is suspected.
	FetchBest(ctx context.Context, url string) (*FetchResult, error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
