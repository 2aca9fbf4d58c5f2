// Package slog provides logging decorators for the core service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/schemamark/schemamark"
)

// Ensure LoggingScraper implements schemamark.Scraper.
var _ schemamark.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with per-request logging.
type LoggingScraper struct {
	next   schemamark.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next schemamark.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, url string, opts schemamark.ScrapeOptions) (analysis *schemamark.ContentAnalysis, err error) {
	defer func(begin time.Time) {
		words := 0
		if analysis != nil {
			words = analysis.Metadata.WordCount
		}
		s.logger.Info("scrape",
			"url", url,
			"words", words,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, url, opts)
}

// Close delegates to the wrapped scraper.
func (s *LoggingScraper) Close() error {
	return s.next.Close()
}
