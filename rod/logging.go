package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/schemamark/schemamark"
)

// Ensure LoggingFetcher implements schemamark.Fetcher.
var _ schemamark.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   schemamark.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next schemamark.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *schemamark.FetchResult, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", resultBytes(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// FetchBest logs the multi-attempt fetch and delegates to the wrapped fetcher.
func (f *LoggingFetcher) FetchBest(ctx context.Context, url string) (result *schemamark.FetchResult, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch best",
			"url", url,
			"bytes", resultBytes(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchBest(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func resultBytes(result *schemamark.FetchResult) int {
	if result == nil {
		return 0
	}
	return len(result.HTML)
}
