// Package fs exports generated markup as snippet files on disk.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/jsonld"
)

// URLToPath converts a page URL to a relative snippet path.
// Example: https://example.com/blog/post → blog/post.html
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Root or trailing slash becomes index.html
	if path == "" || path == "/" {
		return "index.html", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.html", nil
	}

	return path + ".html", nil
}

// FormatSnippet renders a record's schemas as copy-pasteable script blocks
// with a provenance comment.
func FormatSnippet(rec *schemamark.GenerationRecord) (string, error) {
	html, err := jsonld.Embed(rec.Schemas)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!-- generated for %s on %s -->\n", rec.URL, rec.UpdatedAt.Format("2006-01-02"))
	b.WriteString(html)
	b.WriteString("\n")
	return b.String(), nil
}

// SnippetWriter writes generation snippets under a base directory, laid out
// by URL path.
type SnippetWriter struct {
	baseDir string
}

// NewSnippetWriter creates a new SnippetWriter rooted at baseDir.
func NewSnippetWriter(baseDir string) *SnippetWriter {
	return &SnippetWriter{baseDir: baseDir}
}

// WriteSnippet writes one record's markup and returns the file path.
// The file appears atomically; readers never observe a partial snippet.
func (w *SnippetWriter) WriteSnippet(rec *schemamark.GenerationRecord) (string, error) {
	if rec == nil || len(rec.Schemas) == 0 {
		return "", schemamark.Errorf(schemamark.ENOSCHEMAS, "record has no schemas to export")
	}

	relPath, err := URLToPath(rec.URL)
	if err != nil {
		return "", err
	}

	content, err := FormatSnippet(rec)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		os.Remove(tmp)
		return "", err
	}

	return fullPath, nil
}
