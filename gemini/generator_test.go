package gemini_test

import (
	"context"
	"testing"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_ReturnsErrorWhenAnalysisNil(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil, nil) // nil client ok for this test

	_, err := g.Generate(context.Background(), nil, schemamark.GenerateOptions{})

	require.Error(t, err)
	assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
	assert.Contains(t, schemamark.ErrorMessage(err), "analysis required")
}

func TestGenerator_Generate_ReturnsErrorWhenURLEmpty(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil, nil)

	_, err := g.Generate(context.Background(), &schemamark.ContentAnalysis{}, schemamark.GenerateOptions{})

	require.Error(t, err)
	assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
	assert.Contains(t, schemamark.ErrorMessage(err), "URL required")
}

func TestGenerator_Refine_ReturnsErrorWhenSchemasEmpty(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil, nil)

	_, err := g.Refine(context.Background(), "https://example.com", nil, "add dates")

	require.Error(t, err)
	assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
}

func TestGenerator_Refine_ReturnsErrorWhenInstructionsEmpty(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil, nil)
	schemas := []schemamark.JSONLD{{"@type": "Article"}}

	_, err := g.Refine(context.Background(), "https://example.com", schemas, "  ")

	require.Error(t, err)
	assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
	assert.Contains(t, schemamark.ErrorMessage(err), "instructions required")
}

func TestBuildConfig_RequestsJSONResponses(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Schema.org JSON-LD")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}

func TestBuildGeneratePrompt_ContainsPageAnalysis(t *testing.T) {
	t.Parallel()

	published := "2026-02-10T09:00:00Z"
	analysis := &schemamark.ContentAnalysis{
		URL:         "https://example.com/post",
		Title:       "Go Performance Tips",
		Description: "Ten practical tips.",
		Metadata: schemamark.ContentMetadata{
			ContentType: schemamark.ContentTypeBlog,
			Language:    "en",
			Author:      &schemamark.AuthorInfo{Name: "Jordan Reyes"},
			PublishDate: &published,
			Keywords:    []string{"go", "performance"},
			FAQ: []schemamark.FAQItem{
				{Question: "Is it free?", Answer: "Yes."},
			},
		},
	}

	prompt := gemini.BuildGeneratePrompt(analysis, "page body text", schemamark.GenerateOptions{})

	assert.Contains(t, prompt, "<url>https://example.com/post</url>")
	assert.Contains(t, prompt, "<title>Go Performance Tips</title>")
	assert.Contains(t, prompt, "<contentType>blog</contentType>")
	assert.Contains(t, prompt, "<author>Jordan Reyes</author>")
	assert.Contains(t, prompt, "<datePublished>2026-02-10T09:00:00Z</datePublished>")
	assert.Contains(t, prompt, "<keywords>go, performance</keywords>")
	assert.Contains(t, prompt, "<question>Is it free?</question>")
	assert.Contains(t, prompt, "<content>page body text</content>")
}

func TestBuildGeneratePrompt_RequestedTypes(t *testing.T) {
	t.Parallel()

	analysis := &schemamark.ContentAnalysis{URL: "https://example.com"}
	opts := schemamark.GenerateOptions{SchemaTypes: []string{"Article", "FAQPage"}}

	prompt := gemini.BuildGeneratePrompt(analysis, "", opts)

	assert.Contains(t, prompt, "Article, FAQPage")
}

func TestBuildGeneratePrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	analysis := &schemamark.ContentAnalysis{URL: "https://example.com"}

	prompt := gemini.BuildGeneratePrompt(analysis, "", schemamark.GenerateOptions{})

	assert.NotContains(t, prompt, "You are a structured data expert")
}

func TestBuildRefinePrompt_ContainsSchemasAndInstructions(t *testing.T) {
	t.Parallel()

	schemas := []schemamark.JSONLD{
		{"@context": "https://schema.org", "@type": "Article", "headline": "Old Headline"},
	}

	prompt, err := gemini.BuildRefinePrompt("https://example.com/post", schemas, "update the headline")

	require.NoError(t, err)
	assert.Contains(t, prompt, "<url>https://example.com/post</url>")
	assert.Contains(t, prompt, `"headline": "Old Headline"`)
	assert.Contains(t, prompt, "update the headline")
	assert.Contains(t, prompt, `"changes"`)
}
