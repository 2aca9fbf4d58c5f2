// Package scrape composes a browser fetcher, a metadata extractor, and an
// HTML-to-Markdown converter into the schemamark.Scraper used by the
// generation pipeline. The fetcher renders the page, the extractor
// isolates content and metadata, and the converter flattens the content
// region into Markdown text suitable for model prompts.
package scrape

import (
	"context"

	"github.com/schemamark/schemamark"
)

// Ensure Scraper implements schemamark.Scraper at compile time.
var _ schemamark.Scraper = (*Scraper)(nil)

// Scraper turns a URL into a normalized content analysis.
type Scraper struct {
	Fetcher   schemamark.Fetcher
	Extractor schemamark.Extractor
	Converter schemamark.Converter
}

// NewScraper creates a Scraper from its three stages.
func NewScraper(fetcher schemamark.Fetcher, extractor schemamark.Extractor, converter schemamark.Converter) *Scraper {
	return &Scraper{
		Fetcher:   fetcher,
		Extractor: extractor,
		Converter: converter,
	}
}

// Scrape renders the page, extracts content and metadata, and converts the
// content region to Markdown text. The returned analysis holds text in its
// Content field, with the word count derived from that text.
func (s *Scraper) Scrape(ctx context.Context, url string, opts schemamark.ScrapeOptions) (*schemamark.ContentAnalysis, error) {
	fetch := s.Fetcher.Fetch
	if opts.MultiAttempt {
		fetch = s.Fetcher.FetchBest
	}

	result, err := fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	analysis, err := s.Extractor.Extract(result.HTML, url)
	if err != nil {
		return nil, err
	}

	if analysis.Content != "" {
		text, err := s.Converter.Convert(analysis.Content)
		if err != nil {
			return nil, schemamark.Errorf(schemamark.EINTERNAL, "content conversion failed: %v", err)
		}
		analysis.Content = text
		analysis.Metadata.WordCount = schemamark.CountWords(text)
	}

	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	return analysis, nil
}

// Close releases browser resources held by the fetcher.
func (s *Scraper) Close() error {
	return s.Fetcher.Close()
}
