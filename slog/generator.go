package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/schemamark/schemamark"
)

// Ensure LoggingGenerator implements schemamark.Generator.
var _ schemamark.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with per-call logging.
type LoggingGenerator struct {
	next   schemamark.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next schemamark.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the outcome.
func (g *LoggingGenerator) Generate(ctx context.Context, analysis *schemamark.ContentAnalysis, opts schemamark.GenerateOptions) (schemas []schemamark.JSONLD, err error) {
	url := ""
	if analysis != nil {
		url = analysis.URL
	}
	defer func(begin time.Time) {
		g.logger.Info("schema generation",
			"url", url,
			"schemas", len(schemas),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, analysis, opts)
}

// Refine delegates to the wrapped generator and logs the outcome.
func (g *LoggingGenerator) Refine(ctx context.Context, url string, schemas []schemamark.JSONLD, instructions string) (result *schemamark.RefineResult, err error) {
	defer func(begin time.Time) {
		changes := 0
		if result != nil {
			changes = len(result.Changes)
		}
		g.logger.Info("schema refinement",
			"url", url,
			"changes", changes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Refine(ctx, url, schemas, instructions)
}
