// Package trafilatura provides a readability-grade fallback implementation
// of schemamark.FallbackExtractor, used when selector-based extraction
// cannot find a usable content region.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/schemamark/schemamark"
	"golang.org/x/net/html"
)

// Ensure Extractor implements schemamark.FallbackExtractor at compile time.
var _ schemamark.FallbackExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to recover main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the page title and the
// main content region as HTML.
func (e *Extractor) ExtractContent(rawHTML string) (string, string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", "", schemamark.Errorf(schemamark.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", schemamark.Errorf(schemamark.EINVALID, "content extraction failed: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return "", "", err
		}
	}

	return result.Metadata.Title, contentHTML, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
