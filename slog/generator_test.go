package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/mock"
	smslog "github.com/schemamark/schemamark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("logs schema count with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, analysis *schemamark.ContentAnalysis, opts schemamark.GenerateOptions) ([]schemamark.JSONLD, error) {
				return []schemamark.JSONLD{
					{"@type": "Article"},
					{"@type": "FAQPage"},
				}, nil
			},
		}

		gen := smslog.NewLoggingGenerator(inner, logger)
		schemas, err := gen.Generate(context.Background(), &schemamark.ContentAnalysis{URL: "https://example.com/blog/post"}, schemamark.GenerateOptions{})

		require.NoError(t, err)
		assert.Len(t, schemas, 2)
		output := buf.String()
		assert.Contains(t, output, "schema generation")
		assert.Contains(t, output, "url=https://example.com/blog/post")
		assert.Contains(t, output, "schemas=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, analysis *schemamark.ContentAnalysis, opts schemamark.GenerateOptions) ([]schemamark.JSONLD, error) {
				return nil, errors.New("model unavailable")
			},
		}

		gen := smslog.NewLoggingGenerator(inner, logger)
		_, err := gen.Generate(context.Background(), &schemamark.ContentAnalysis{URL: "https://example.com"}, schemamark.GenerateOptions{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"model unavailable\"")
	})

	t.Run("handles nil analysis", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, analysis *schemamark.ContentAnalysis, opts schemamark.GenerateOptions) ([]schemamark.JSONLD, error) {
				return nil, errors.New("analysis required")
			},
		}

		gen := smslog.NewLoggingGenerator(inner, logger)
		_, err := gen.Generate(context.Background(), nil, schemamark.GenerateOptions{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "schema generation")
	})
}

func TestLoggingGenerator_Refine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Generator{
		RefineFn: func(ctx context.Context, url string, schemas []schemamark.JSONLD, instructions string) (*schemamark.RefineResult, error) {
			return &schemamark.RefineResult{
				Schemas: schemas,
				Changes: []string{"shortened headline", "added author"},
			}, nil
		},
	}

	gen := smslog.NewLoggingGenerator(inner, logger)
	result, err := gen.Refine(context.Background(), "https://example.com/blog/post", []schemamark.JSONLD{{"@type": "Article"}}, "shorten the headline")

	require.NoError(t, err)
	assert.Len(t, result.Changes, 2)
	output := buf.String()
	assert.Contains(t, output, "schema refinement")
	assert.Contains(t, output, "changes=2")
}
