package mock

import (
	"context"

	"github.com/schemamark/schemamark"
)

var _ schemamark.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of schemamark.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string, opts schemamark.ScrapeOptions) (*schemamark.ContentAnalysis, error)
	CloseFn  func() error
}

func (s *Scraper) Scrape(ctx context.Context, url string, opts schemamark.ScrapeOptions) (*schemamark.ContentAnalysis, error) {
	return s.ScrapeFn(ctx, url, opts)
}

func (s *Scraper) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
