package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/schemamark/schemamark"
	main "github.com/schemamark/schemamark/cmd/schemamark"
	"github.com/schemamark/schemamark/jsonld"
	"github.com/schemamark/schemamark/mock"
	"github.com/schemamark/schemamark/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefineCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints changes and revised markup", func(t *testing.T) {
		t.Parallel()

		existing := &schemamark.GenerationRecord{
			ID:     "gen-123",
			URL:    "https://example.com/blog/post",
			Status: schemamark.StatusSuccess,
			Schemas: []schemamark.JSONLD{{
				"@context": "https://schema.org",
				"@type":    "Article",
				"headline": "A very long headline that should be shortened",
			}},
		}

		p := &pipeline.Pipeline{
			Generations: &mock.GenerationService{
				FindGenerationByIDFn: func(_ context.Context, id string) (*schemamark.GenerationRecord, error) {
					return existing, nil
				},
				UpdateGenerationFn: func(_ context.Context, id string, upd schemamark.GenerationUpdate) (*schemamark.GenerationRecord, error) {
					existing.Schemas = upd.Schemas
					return existing, nil
				},
			},
			Generator: &mock.Generator{
				RefineFn: func(_ context.Context, url string, schemas []schemamark.JSONLD, instructions string) (*schemamark.RefineResult, error) {
					assert.Equal(t, "https://example.com/blog/post", url)
					assert.Equal(t, "shorten the headline", instructions)
					return &schemamark.RefineResult{
						Schemas: []schemamark.JSONLD{{
							"@context": "https://schema.org",
							"@type":    "Article",
							"headline": "Short",
						}},
						Changes: []string{"shortened headline"},
					}, nil
				},
			},
			Validator: jsonld.NewValidator(),
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Pipeline: p,
		}

		cmd := &main.RefineCmd{ID: "gen-123", Instructions: "shorten the headline"}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Refined gen-123 (1 change(s))")
		assert.Contains(t, output, "- shortened headline")
		assert.Contains(t, output, `"headline": "Short"`)
	})

	t.Run("reports missing record", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Generations: &mock.GenerationService{
				FindGenerationByIDFn: func(_ context.Context, id string) (*schemamark.GenerationRecord, error) {
					return nil, schemamark.Errorf(schemamark.ENOTFOUND, "generation %q not found", id)
				},
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Pipeline: p,
		}

		cmd := &main.RefineCmd{ID: "gen-999", Instructions: "anything"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "not found")
	})
}
