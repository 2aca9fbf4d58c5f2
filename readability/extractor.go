// Package readability provides a fallback content extractor built on the
// go-readability port of Mozilla's Readability algorithm.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/schemamark/schemamark"
)

// Ensure Extractor implements schemamark.FallbackExtractor at compile time.
var _ schemamark.FallbackExtractor = (*Extractor)(nil)

// Extractor recovers a page's main content when selector-based extraction
// comes up empty. It scores DOM subtrees the way a reader-mode view does,
// which handles pages with no semantic content markup.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent returns the page title and main content HTML.
func (e *Extractor) ExtractContent(html string) (string, string, error) {
	if html == "" {
		return "", "", schemamark.Errorf(schemamark.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return "", "", schemamark.Errorf(schemamark.EINTERNAL, "readability extraction failed: %v", err)
	}

	return article.Title, article.Content, nil
}
