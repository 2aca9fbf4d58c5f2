package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"root", "https://example.com", "index.html"},
		{"root with slash", "https://example.com/", "index.html"},
		{"page", "https://example.com/pricing", "pricing.html"},
		{"nested", "https://example.com/blog/post", "blog/post.html"},
		{"trailing slash", "https://example.com/blog/", "blog/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnippetWriter_WriteSnippet(t *testing.T) {
	t.Parallel()

	t.Run("writes script blocks with provenance comment", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewSnippetWriter(dir)

		rec := &schemamark.GenerationRecord{
			ID:  "gen-123",
			URL: "https://example.com/blog/post",
			Schemas: []schemamark.JSONLD{{
				"@context": "https://schema.org",
				"@type":    "Article",
				"headline": "Post",
			}},
			UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		}

		path, err := w.WriteSnippet(rec)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "blog", "post.html"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "<!-- generated for https://example.com/blog/post on 2026-03-01 -->")
		assert.Contains(t, string(content), `<script type="application/ld+json">`)
		assert.Contains(t, string(content), `"@type": "Article"`)

		// No leftover temp file
		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("overwrites an existing snippet", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewSnippetWriter(dir)

		rec := &schemamark.GenerationRecord{
			URL: "https://example.com/pricing",
			Schemas: []schemamark.JSONLD{{
				"@context": "https://schema.org",
				"@type":    "Product",
				"name":     "Old",
			}},
		}

		_, err := w.WriteSnippet(rec)
		require.NoError(t, err)

		rec.Schemas[0]["name"] = "New"
		path, err := w.WriteSnippet(rec)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"name": "New"`)
		assert.NotContains(t, string(content), `"name": "Old"`)
	})

	t.Run("rejects records without schemas", func(t *testing.T) {
		t.Parallel()

		w := fs.NewSnippetWriter(t.TempDir())
		_, err := w.WriteSnippet(&schemamark.GenerationRecord{URL: "https://example.com"})

		require.Error(t, err)
		assert.Equal(t, schemamark.ENOSCHEMAS, schemamark.ErrorCode(err))
	})
}
