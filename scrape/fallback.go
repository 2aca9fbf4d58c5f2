package scrape

import (
	"github.com/schemamark/schemamark"
)

// Ensure FallbackChain implements schemamark.FallbackExtractor.
var _ schemamark.FallbackExtractor = (FallbackChain)(nil)

// FallbackChain tries each extractor in order and keeps the first one that
// produces content.
type FallbackChain []schemamark.FallbackExtractor

// NewFallbackChain creates a chain from the given extractors.
func NewFallbackChain(extractors ...schemamark.FallbackExtractor) FallbackChain {
	return FallbackChain(extractors)
}

// ExtractContent returns the first non-empty extraction result.
func (c FallbackChain) ExtractContent(html string) (string, string, error) {
	var lastErr error
	for _, e := range c {
		title, content, err := e.ExtractContent(html)
		if err != nil {
			lastErr = err
			continue
		}
		if content != "" {
			return title, content, nil
		}
	}
	if lastErr != nil {
		return "", "", lastErr
	}
	return "", "", schemamark.Errorf(schemamark.EINTERNAL, "no fallback extractor produced content")
}
