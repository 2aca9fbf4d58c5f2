// Package goquery provides a CSS-selector based implementation of
// schemamark.Extractor. It pulls titles, descriptions, authorship, dates,
// images, keywords, FAQ blocks, social links, and embedded structured data
// out of rendered HTML, and isolates the main content region via a ranked
// selector chain.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/schemamark/schemamark"
)

// Ensure Extractor implements schemamark.Extractor at compile time.
var _ schemamark.Extractor = (*Extractor)(nil)

// Extractor extracts structured content and metadata from rendered HTML.
type Extractor struct {
	fallback schemamark.FallbackExtractor
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithFallback sets a readability-style fallback used when the ranked
// content-selector chain finds nothing usable.
func WithFallback(fb schemamark.FallbackExtractor) ExtractorOption {
	return func(e *Extractor) {
		e.fallback = fb
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns a normalized analysis. The
// Content field holds the main content region as cleaned HTML; word count
// is derived from its text per the ContentAnalysis invariant.
func (e *Extractor) Extract(html string, pageURL string) (*schemamark.ContentAnalysis, error) {
	if strings.TrimSpace(html) == "" {
		return nil, schemamark.Errorf(schemamark.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, schemamark.Errorf(schemamark.EINVALID, "failed to parse HTML: %v", err)
	}

	contentHTML, contentText := extractContent(doc)
	if len(contentText) < minContentChars && e.fallback != nil {
		if _, fbHTML, fbErr := e.fallback.ExtractContent(html); fbErr == nil && fbHTML != "" {
			contentHTML = fbHTML
			contentText = textOf(fbHTML)
		}
	}

	analysis := &schemamark.ContentAnalysis{
		URL:         pageURL,
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		Content:     contentHTML,
		Metadata: schemamark.ContentMetadata{
			Author:       extractAuthor(doc),
			PublishDate:  extractDate(doc, publishDateSelectors),
			ModifiedDate: extractDate(doc, modifiedDateSelectors),
			WordCount:    schemamark.CountWords(contentText),
			ContentType:  classify(doc, pageURL),
			Language:     extractLanguage(doc),
			CanonicalURL: extractCanonical(doc, pageURL),
			Images:       extractImages(doc, pageURL),
			Keywords:     extractKeywords(doc),
			Tags:         extractTags(doc),
			Business:     extractBusiness(doc, pageURL),
			FAQ:          extractFAQ(doc),
			SocialURLs:   extractSocialLinks(doc),
			ExistingLD:   extractExistingJSONLD(doc),
		},
	}

	return analysis, nil
}

// textOf returns the flattened text of an HTML fragment.
func textOf(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}
